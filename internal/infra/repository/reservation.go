package repository

import (
	"context"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertReservationSQL = `
INSERT INTO reservations (user_id, check_in, check_out, status, subtotal_cents, tax_rate_bps, tax_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	insertReservationRoomsSQL = `
INSERT INTO reservation_rooms (reservation_id, room_id, room_number, nightly_rate_cents, check_in, check_out, status)
SELECT $1::uuid, r.room_id, r.room_number, r.nightly_rate_cents, $2::date, $3::date, 'active'
FROM unnest($4::uuid[], $5::text[], $6::bigint[]) AS r(room_id, room_number, nightly_rate_cents)`

	releaseReservationRoomsSQL = `
UPDATE reservation_rooms
SET status = 'released', released_at = now()
WHERE reservation_id = $1 AND room_id = ANY($2::uuid[]) AND status = 'active'`

	updateReservationStatusSQL = `
UPDATE reservations
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`
)

type ReservationRepository struct {
	dbtx db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{dbtx: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation, costs reservation.RoomCostBreakdown) (uuid.UUID, error) {
	stay := res.Stay()
	checkIn := pgconv.DateToPgtype(stay.CheckIn())
	checkOut := pgconv.DateToPgtype(stay.CheckOut())

	var id uuid.UUID
	err := r.dbtx.QueryRow(ctx, insertReservationSQL,
		res.UserID(), checkIn, checkOut, string(res.Status()),
		costs.Subtotal.Cents(), costs.TaxRate.BasisPoints(), costs.Tax.Cents(), costs.Total.Cents(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	rooms := res.Rooms()
	roomIDs := make([]uuid.UUID, len(rooms))
	numbers := make([]string, len(rooms))
	rates := make([]int64, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.RoomID
		numbers[i] = room.RoomNumber
		rates[i] = room.NightlyRate.Cents()
	}

	// 23P01 from the exclusion constraint is classified as KindConflict
	if _, err := r.dbtx.Exec(ctx, insertReservationRoomsSQL, id, checkIn, checkOut, roomIDs, numbers, rates); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to book reservation rooms", err)
	}

	return id, nil
}

func (r *ReservationRepository) ReleaseRooms(ctx context.Context, reservationID uuid.UUID, roomIDs []uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, releaseReservationRoomsSQL, reservationID, roomIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to release reservation rooms", err)
	}
	if tag.RowsAffected() != int64(len(roomIDs)) {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "some rooms were not active")
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next reservation.Status) error {
	tag, err := r.dbtx.Exec(ctx, updateReservationStatusSQL, id, string(expected), string(next))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindPreconditionFailed, "reservation status changed concurrently")
	}
	return nil
}
