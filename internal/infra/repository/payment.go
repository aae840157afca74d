package repository

import (
	"context"

	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertPaymentSQL = `
INSERT INTO payments (reservation_id, amount_cents, method, status)
VALUES ($1, $2, $3, $4)
RETURNING id`

	updatePaymentStatusSQL = `
UPDATE payments
SET status = $3, failure_reason = $4, updated_at = now()
WHERE id = $1 AND status = $2`
)

type PaymentRepository struct {
	dbtx db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{dbtx: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.dbtx.QueryRow(ctx, insertPaymentSQL,
		p.ReservationID(), p.Amount().Cents(), p.Method(), string(p.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next payment.Status, failureReason *string) error {
	tag, err := r.dbtx.Exec(ctx, updatePaymentStatusSQL, id, string(expected), string(next), failureReason)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "payment status changed concurrently")
	}
	return nil
}
