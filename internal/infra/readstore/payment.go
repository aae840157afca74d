package readstore

import (
	"context"
	"time"

	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	paymentColumns = `id, reservation_id, amount_cents, method, status, failure_reason, created_at, updated_at`

	getPaymentSQL = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
)

type paymentRow struct {
	ID            uuid.UUID   `db:"id"`
	ReservationID uuid.UUID   `db:"reservation_id"`
	AmountCents   int64       `db:"amount_cents"`
	Method        string      `db:"method"`
	Status        string      `db:"status"`
	FailureReason pgtype.Text `db:"failure_reason"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (p paymentRow) toView() queries.PaymentView {
	return queries.PaymentView{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		AmountCents:   p.AmountCents,
		Method:        p.Method,
		Status:        p.Status,
		FailureReason: pgconv.StringPtrFromPgtype(p.FailureReason),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func findPaymentRow(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (paymentRow, error) {
	rows, err := dbtx.Query(ctx, getPaymentSQL, id)
	if err != nil {
		return paymentRow{}, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return paymentRow{}, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return paymentRow{}, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return row, nil
}

type PaymentReadStore struct {
	dbtx db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{dbtx: dbtx}
}

func (r *PaymentReadStore) LoadPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row, err := findPaymentRow(ctx, r.dbtx, id)
	if err != nil {
		return nil, err
	}
	return payment.ReconstructPayment(
		row.ID,
		row.ReservationID,
		reservation.MustMoney(row.AmountCents),
		row.Method,
		payment.Status(row.Status),
		pgconv.StringPtrFromPgtype(row.FailureReason),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
