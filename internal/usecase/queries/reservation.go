package queries

import (
	"context"
	"time"

	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

type ReservationQueries interface {
	CalculateRoomCosts(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) (*RoomCostView, error)
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the ownership check (read-after-write and idempotent replay)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
	uow   shared.UnitOfWork
	calc  reservation.CostCalculator
	clock clock.Clock
}

func NewReservationQueries(store ReservationReadStore, uow shared.UnitOfWork, calc reservation.CostCalculator, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{store: store, uow: uow, calc: calc, clock: clk}
}

func (q *reservationQueriesImpl) CalculateRoomCosts(ctx context.Context, roomIDs []uuid.UUID, checkIn, checkOut time.Time) (*RoomCostView, error) {
	stay, err := reservation.NewStayPeriod(checkIn, checkOut, q.clock.Now())
	if err != nil {
		return nil, err
	}
	rates, err := shared.LoadRoomRates(ctx, q.uow.CommandReads(), roomIDs)
	if err != nil {
		return nil, err
	}
	breakdown, err := q.calc.ComputeRoomCosts(rates, stay)
	if err != nil {
		return nil, err
	}
	return toRoomCostView(stay, breakdown), nil
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	// not owned reads as missing so other users cannot enumerate IDs
	if !actor.CanActOn(view.UserID) {
		return nil, reservation.ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindPaymentByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, err
	}
	return view, nil
}

func toRoomCostView(stay reservation.StayPeriod, b reservation.RoomCostBreakdown) *RoomCostView {
	lines := make([]RoomCostLineView, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = RoomCostLineView{
			RoomID:           l.RoomID,
			RoomNumber:       l.RoomNumber,
			NightlyRateCents: l.NightlyRate.Cents(),
			Nights:           l.Nights,
			LineTotalCents:   l.LineTotal.Cents(),
		}
	}
	return &RoomCostView{
		CheckIn:       stay.CheckIn(),
		CheckOut:      stay.CheckOut(),
		Nights:        b.Nights,
		Rooms:         lines,
		SubtotalCents: b.Subtotal.Cents(),
		TaxRateBps:    b.TaxRate.BasisPoints(),
		TaxCents:      b.Tax.Cents(),
		TotalCents:    b.Total.Cents(),
	}
}
