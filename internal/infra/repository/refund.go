package repository

import (
	"context"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertRefundSQL = `
INSERT INTO refunds (cancellation_request_id, refund_method_id, amount_cents, status, processed_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	updateRefundStatusSQL = `
UPDATE refunds
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`
)

type RefundRepository struct {
	dbtx db.DBTX
}

func NewRefundRepository(dbtx db.DBTX) *RefundRepository {
	return &RefundRepository{dbtx: dbtx}
}

// Create relies on UNIQUE(cancellation_request_id): a second refund for the same request fails with KindDuplicateKey.
func (r *RefundRepository) Create(ctx context.Context, refund *cancellation.Refund) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.dbtx.QueryRow(ctx, insertRefundSQL,
		refund.CancellationRequestID(), int32(refund.MethodID()), refund.Amount().Cents(),
		string(refund.Status()), refund.ProcessedBy(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create refund", err)
	}
	return id, nil
}

func (r *RefundRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next cancellation.RefundStatus) error {
	tag, err := r.dbtx.Exec(ctx, updateRefundStatusSQL, id, string(expected), string(next))
	if err != nil {
		return infra.WrapRepoErr("failed to update refund status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "refund status changed concurrently")
	}
	return nil
}
