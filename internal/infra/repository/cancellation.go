package repository

import (
	"context"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertCancellationRequestSQL = `
INSERT INTO cancellation_requests (
    reservation_id, user_id, reason, cancellation_type, status,
    policy_id, policy_description, charge_percentage_bps, minimum_charge_cents,
    total_cost_cents, charge_cents, evaluated_on, requested_on
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

	insertCancellationRequestRoomsSQL = `
INSERT INTO cancellation_request_rooms (cancellation_request_id, reservation_id, room_id)
SELECT $1::uuid, $2::uuid, room_id FROM unnest($3::uuid[]) AS room_id`

	updateCancellationStatusSQL = `
UPDATE cancellation_requests
SET status = $3,
    reviewed_by = COALESCE($4, reviewed_by),
    reviewed_on = COALESCE($5, reviewed_on)
WHERE id = $1 AND status = $2`
)

type CancellationRepository struct {
	dbtx db.DBTX
}

func NewCancellationRepository(dbtx db.DBTX) *CancellationRepository {
	return &CancellationRepository{dbtx: dbtx}
}

func (r *CancellationRepository) Create(ctx context.Context, req *cancellation.Request) (uuid.UUID, error) {
	c := req.Charge()

	var id uuid.UUID
	err := r.dbtx.QueryRow(ctx, insertCancellationRequestSQL,
		req.ReservationID(), req.UserID(), req.Reason(), string(req.Type()), string(req.Status()),
		c.PolicyID, c.PolicyDescription, c.ChargePercentage.BasisPoints(), c.MinimumCharge.Cents(),
		c.TotalCost.Cents(), c.Charge.Cents(), pgconv.DateToPgtype(c.EvaluatedOn), req.RequestedOn(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create cancellation request", err)
	}

	if _, err := r.dbtx.Exec(ctx, insertCancellationRequestRoomsSQL, id, req.ReservationID(), req.RoomIDs()); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to record cancelled rooms", err)
	}
	return id, nil
}

func (r *CancellationRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	expected, next cancellation.Status,
	reviewedBy *uuid.UUID,
	reviewedOn *time.Time,
) error {
	tag, err := r.dbtx.Exec(ctx, updateCancellationStatusSQL,
		id, string(expected), string(next), pgconv.UUIDPtrToPgtype(reviewedBy), pgconv.TimePtrToPgtype(reviewedOn))
	if err != nil {
		return infra.WrapRepoErr("failed to update cancellation request status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "cancellation request status changed concurrently")
	}
	return nil
}
