package repository

import (
	"context"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

var guestColumns = []string{
	"reservation_id", "room_id", "first_name", "last_name", "email",
	"phone", "age_group", "address", "country_id", "state_id",
}

type GuestRepository struct {
	dbtx db.DBTX
}

func NewGuestRepository(dbtx db.DBTX) *GuestRepository {
	return &GuestRepository{dbtx: dbtx}
}

func (r *GuestRepository) InsertBatch(ctx context.Context, guests []*reservation.Guest) (int64, error) {
	src := pgx.CopyFromSlice(len(guests), func(i int) ([]any, error) {
		g := guests[i]
		d := g.Detail()
		return []any{
			g.ReservationID(), d.RoomID, d.FirstName, d.LastName, nullable(d.Email),
			nullable(d.Phone), string(d.AgeGroup), nullable(d.Address), int32(d.CountryID), int32(d.StateID),
		}, nil
	})

	n, err := r.dbtx.CopyFrom(ctx, pgx.Identifier{"guests"}, guestColumns, src)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert guests", err)
	}
	return n, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
