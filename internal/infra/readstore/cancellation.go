package readstore

import (
	"context"
	"time"

	"hotel-booking/internal/domain/cancellation"
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
	cancellationColumns = `
    cr.id, cr.reservation_id, cr.user_id,
    ARRAY(SELECT crr.room_id FROM cancellation_request_rooms crr
          WHERE crr.cancellation_request_id = cr.id ORDER BY crr.room_id) AS room_ids,
    cr.reason, cr.cancellation_type, cr.status,
    cr.policy_id, cr.policy_description, cr.charge_percentage_bps, cr.minimum_charge_cents,
    cr.total_cost_cents, cr.charge_cents, cr.evaluated_on, cr.requested_on,
    cr.reviewed_by, cr.reviewed_on`

	getCancellationSQL = `SELECT ` + cancellationColumns + ` FROM cancellation_requests cr WHERE cr.id = $1`

	listCancellationsSQL = `SELECT ` + cancellationColumns + `
FROM cancellation_requests cr
WHERE ($1::text IS NULL OR cr.status = $1::text)
  AND ($2::date IS NULL OR cr.requested_on >= $2::date)
  AND ($3::date IS NULL OR cr.requested_on < $3::date + 1)
ORDER BY cr.requested_on DESC, cr.id`

	listCancellationsForRefundSQL = `SELECT ` + cancellationColumns + `, rf.id AS refund_id, rf.status AS refund_status
FROM cancellation_requests cr
LEFT JOIN refunds rf ON rf.cancellation_request_id = cr.id
WHERE cr.status IN ('approved', 'refund_pending')
  AND (rf.id IS NULL OR rf.status <> 'processed')
ORDER BY cr.requested_on, cr.id`

	listOpenCancellationRoomIDsSQL = `
SELECT crr.room_id
FROM cancellation_request_rooms crr
JOIN cancellation_requests cr ON cr.id = crr.cancellation_request_id
WHERE cr.reservation_id = $1
  AND cr.status IN ('requested', 'approved', 'refund_pending')`

	policyColumns = `id, description, charge_percentage_bps, minimum_charge_cents, effective_from, effective_to`

	listPoliciesSQL = `SELECT ` + policyColumns + ` FROM cancellation_policies ORDER BY effective_from, id`

	listCoveringPoliciesSQL = `SELECT ` + policyColumns + `
FROM cancellation_policies
WHERE effective_from <= $1 AND effective_to >= $1
ORDER BY effective_from DESC, id`

	refundColumns = `rf.id, rf.cancellation_request_id, rf.refund_method_id, rm.name AS refund_method,
    rf.amount_cents, rf.status, rf.processed_by, rf.created_at, rf.updated_at`

	getRefundSQL = `SELECT ` + refundColumns + `
FROM refunds rf
JOIN refund_methods rm ON rm.id = rf.refund_method_id
WHERE rf.id = $1`

	refundMethodExistsSQL = `SELECT EXISTS (SELECT 1 FROM refund_methods WHERE id = $1 AND is_active)`
)

type cancellationRow struct {
	ID                  uuid.UUID          `db:"id"`
	ReservationID       uuid.UUID          `db:"reservation_id"`
	UserID              uuid.UUID          `db:"user_id"`
	RoomIDs             []uuid.UUID        `db:"room_ids"`
	Reason              pgtype.Text        `db:"reason"`
	Type                string             `db:"cancellation_type"`
	Status              string             `db:"status"`
	PolicyID            uuid.UUID          `db:"policy_id"`
	PolicyDescription   string             `db:"policy_description"`
	ChargePercentageBps int32              `db:"charge_percentage_bps"`
	MinimumChargeCents  int64              `db:"minimum_charge_cents"`
	TotalCostCents      int64              `db:"total_cost_cents"`
	ChargeCents         int64              `db:"charge_cents"`
	EvaluatedOn         time.Time          `db:"evaluated_on"`
	RequestedOn         time.Time          `db:"requested_on"`
	ReviewedBy          pgtype.UUID        `db:"reviewed_by"`
	ReviewedOn          pgtype.Timestamptz `db:"reviewed_on"`
}

type cancellationForRefundRow struct {
	cancellationRow
	RefundID     pgtype.UUID `db:"refund_id"`
	RefundStatus pgtype.Text `db:"refund_status"`
}

type policyRow struct {
	ID                  uuid.UUID `db:"id"`
	Description         string    `db:"description"`
	ChargePercentageBps int32     `db:"charge_percentage_bps"`
	MinimumChargeCents  int64     `db:"minimum_charge_cents"`
	EffectiveFrom       time.Time `db:"effective_from"`
	EffectiveTo         time.Time `db:"effective_to"`
}

type refundRow struct {
	ID                    uuid.UUID `db:"id"`
	CancellationRequestID uuid.UUID `db:"cancellation_request_id"`
	RefundMethodID        int32     `db:"refund_method_id"`
	RefundMethod          string    `db:"refund_method"`
	AmountCents           int64     `db:"amount_cents"`
	Status                string    `db:"status"`
	ProcessedBy           uuid.UUID `db:"processed_by"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

func (c cancellationRow) charge() cancellation.ChargeResult {
	return cancellation.ChargeResult{
		PolicyID:          c.PolicyID,
		PolicyDescription: c.PolicyDescription,
		ChargePercentage:  reservation.MustPercentage(int64(c.ChargePercentageBps)),
		MinimumCharge:     reservation.MustMoney(c.MinimumChargeCents),
		TotalCost:         reservation.MustMoney(c.TotalCostCents),
		Charge:            reservation.MustMoney(c.ChargeCents),
		EvaluatedOn:       c.EvaluatedOn,
	}
}

func (c cancellationRow) toView() queries.CancellationView {
	return queries.CancellationView{
		ID:                  c.ID,
		ReservationID:       c.ReservationID,
		UserID:              c.UserID,
		RoomIDs:             c.RoomIDs,
		Reason:              pgconv.StringPtrFromPgtype(c.Reason),
		Type:                c.Type,
		Status:              c.Status,
		PolicyID:            c.PolicyID,
		PolicyDescription:   c.PolicyDescription,
		ChargePercentageBps: int64(c.ChargePercentageBps),
		TotalCostCents:      c.TotalCostCents,
		ChargeCents:         c.ChargeCents,
		RefundableCents:     c.charge().RefundAmount().Cents(),
		RequestedOn:         c.RequestedOn,
		ReviewedBy:          pgconv.UUIDPtrFromPgtype(c.ReviewedBy),
		ReviewedOn:          pgconv.TimePtrFromPgtype(c.ReviewedOn),
	}
}

func (c cancellationRow) toDomain() *cancellation.Request {
	return cancellation.ReconstructRequest(
		c.ID,
		c.ReservationID,
		c.UserID,
		c.RoomIDs,
		pgconv.StringPtrFromPgtype(c.Reason),
		cancellation.Type(c.Type),
		cancellation.Status(c.Status),
		c.charge(),
		c.RequestedOn,
		pgconv.UUIDPtrFromPgtype(c.ReviewedBy),
		pgconv.TimePtrFromPgtype(c.ReviewedOn),
	)
}

func (p policyRow) toDomain() cancellation.Policy {
	return cancellation.Policy{
		ID:               p.ID,
		Description:      p.Description,
		ChargePercentage: reservation.MustPercentage(int64(p.ChargePercentageBps)),
		MinimumCharge:    reservation.MustMoney(p.MinimumChargeCents),
		EffectiveFrom:    p.EffectiveFrom,
		EffectiveTo:      p.EffectiveTo,
	}
}

type CancellationReadStore struct {
	dbtx db.DBTX
}

func NewCancellationReadStore(dbtx db.DBTX) *CancellationReadStore {
	return &CancellationReadStore{dbtx: dbtx}
}

func (r *CancellationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CancellationView, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	view := row.toView()
	return &view, nil
}

func (r *CancellationReadStore) List(ctx context.Context, filters queries.CancellationFilters) ([]queries.CancellationView, error) {
	rows, err := r.dbtx.Query(ctx, listCancellationsSQL,
		filters.Status, pgconv.DatePtrToPgtype(filters.DateFrom), pgconv.DatePtrToPgtype(filters.DateTo))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cancellation requests", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[cancellationRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan cancellation requests", err)
	}
	out := make([]queries.CancellationView, len(records))
	for i, c := range records {
		out[i] = c.toView()
	}
	return out, nil
}

func (r *CancellationReadStore) ListForRefund(ctx context.Context) ([]queries.CancellationForRefundView, error) {
	rows, err := r.dbtx.Query(ctx, listCancellationsForRefundSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cancellations for refund", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[cancellationForRefundRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan cancellations for refund", err)
	}
	out := make([]queries.CancellationForRefundView, len(records))
	for i, c := range records {
		out[i] = queries.CancellationForRefundView{
			CancellationView: c.toView(),
			RefundID:         pgconv.UUIDPtrFromPgtype(c.RefundID),
			RefundStatus:     pgconv.StringPtrFromPgtype(c.RefundStatus),
		}
	}
	return out, nil
}

func (r *CancellationReadStore) ListPolicies(ctx context.Context) ([]queries.PolicyView, error) {
	records, err := r.queryPolicies(ctx, listPoliciesSQL)
	if err != nil {
		return nil, err
	}
	out := make([]queries.PolicyView, len(records))
	for i, p := range records {
		out[i] = queries.PolicyView{
			ID:                  p.ID,
			Description:         p.Description,
			ChargePercentageBps: int64(p.ChargePercentageBps),
			MinimumChargeCents:  p.MinimumChargeCents,
			EffectiveFrom:       p.EffectiveFrom,
			EffectiveTo:         p.EffectiveTo,
		}
	}
	return out, nil
}

func (r *CancellationReadStore) FindRefundByID(ctx context.Context, id uuid.UUID) (*queries.RefundView, error) {
	row, err := r.findRefundRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return &queries.RefundView{
		ID:                    row.ID,
		CancellationRequestID: row.CancellationRequestID,
		RefundMethodID:        int(row.RefundMethodID),
		RefundMethod:          row.RefundMethod,
		AmountCents:           row.AmountCents,
		Status:                row.Status,
		ProcessedBy:           row.ProcessedBy,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}, nil
}

// Write-side loaders

func (r *CancellationReadStore) LoadRequest(ctx context.Context, id uuid.UUID) (*cancellation.Request, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CancellationReadStore) LoadRefund(ctx context.Context, id uuid.UUID) (*cancellation.Refund, error) {
	row, err := r.findRefundRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return cancellation.ReconstructRefund(
		row.ID,
		row.CancellationRequestID,
		int(row.RefundMethodID),
		reservation.MustMoney(row.AmountCents),
		cancellation.RefundStatus(row.Status),
		row.ProcessedBy,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

// CoveringPolicies re-reads the policy table on every call.
func (r *CancellationReadStore) CoveringPolicies(ctx context.Context, at time.Time) ([]cancellation.Policy, error) {
	records, err := r.queryPolicies(ctx, listCoveringPoliciesSQL, pgconv.DateToPgtype(reservation.DateOf(at)))
	if err != nil {
		return nil, err
	}
	out := make([]cancellation.Policy, len(records))
	for i, p := range records {
		out[i] = p.toDomain()
	}
	return out, nil
}

func (r *CancellationReadStore) OpenRoomIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.dbtx.Query(ctx, listOpenCancellationRoomIDsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open cancellation rooms", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan open cancellation rooms", err)
	}
	return ids, nil
}

func (r *CancellationReadStore) RefundMethodExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.dbtx.QueryRow(ctx, refundMethodExistsSQL, int32(id)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check refund method", err)
	}
	return exists, nil
}

func (r *CancellationReadStore) findRow(ctx context.Context, id uuid.UUID) (cancellationRow, error) {
	rows, err := r.dbtx.Query(ctx, getCancellationSQL, id)
	if err != nil {
		return cancellationRow{}, infra.WrapRepoErr("failed to find cancellation request by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[cancellationRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return cancellationRow{}, infra.WrapRepoErr("cancellation request not found", err, infra.KindNotFound)
		}
		return cancellationRow{}, infra.WrapRepoErr("failed to find cancellation request by ID", err)
	}
	return row, nil
}

func (r *CancellationReadStore) findRefundRow(ctx context.Context, id uuid.UUID) (refundRow, error) {
	rows, err := r.dbtx.Query(ctx, getRefundSQL, id)
	if err != nil {
		return refundRow{}, infra.WrapRepoErr("failed to find refund by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[refundRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return refundRow{}, infra.WrapRepoErr("refund not found", err, infra.KindNotFound)
		}
		return refundRow{}, infra.WrapRepoErr("failed to find refund by ID", err)
	}
	return row, nil
}

func (r *CancellationReadStore) queryPolicies(ctx context.Context, query string, args ...any) ([]policyRow, error) {
	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cancellation policies", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[policyRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan cancellation policies", err)
	}
	return out, nil
}
