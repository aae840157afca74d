package uow

import (
	"context"

	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/readstore"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReservationViews assembles the reservation view (header, rooms, guests, payments)
// from a single read-only snapshot.
type ReservationViews struct {
	uow *PostgresUoW
}

func NewReservationViews(u *PostgresUoW) *ReservationViews {
	return &ReservationViews{uow: u}
}

func (v *ReservationViews) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := v.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		view, err = readstore.NewReservationReadStore(dbtx).FindByID(ctx, id)
		return err
	})
	return view, err
}

func (v *ReservationViews) FindPaymentByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	var view *queries.PaymentView
	err := v.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		view, err = readstore.NewReservationReadStore(dbtx).FindPaymentByID(ctx, id)
		return err
	})
	return view, err
}
