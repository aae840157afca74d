package queries

import (
	"context"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange     = errs.Validation("dateFrom must not be after dateTo")
	ErrNoPendingRefunds     = errs.NotFound("no cancellations awaiting refund")
	ErrNoCancellationsFound = errs.NotFound("no cancellation requests found")
)

//go:generate mockgen -source=cancellation.go -destination=../../../tests/mock/queries/cancellation.go -package=queriesmock

type CancellationQueries interface {
	CalculateCharges(ctx context.Context, actor user.Actor, reservationID uuid.UUID, roomIDs []uuid.UUID) (*ChargeView, error)
	ListPolicies(ctx context.Context) ([]PolicyView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CancellationView, error)
	ListForRefund(ctx context.Context) ([]CancellationForRefundView, error)
	ListAll(ctx context.Context, filters CancellationFilters) ([]CancellationView, error)
	GetRefundByID(ctx context.Context, id uuid.UUID) (*RefundView, error)
}

type CancellationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CancellationView, error)
	List(ctx context.Context, filters CancellationFilters) ([]CancellationView, error)
	ListForRefund(ctx context.Context) ([]CancellationForRefundView, error)
	ListPolicies(ctx context.Context) ([]PolicyView, error)
	FindRefundByID(ctx context.Context, id uuid.UUID) (*RefundView, error)
}

type cancellationQueriesImpl struct {
	store  CancellationReadStore
	uow    shared.UnitOfWork
	engine *cancellation.PolicyEngine
	clock  clock.Clock
}

func NewCancellationQueries(store CancellationReadStore, uow shared.UnitOfWork, engine *cancellation.PolicyEngine, clk clock.Clock) CancellationQueries {
	return &cancellationQueriesImpl{store: store, uow: uow, engine: engine, clock: clk}
}

// CalculateCharges prices a prospective cancellation without recording anything.
func (q *cancellationQueriesImpl) CalculateCharges(ctx context.Context, actor user.Actor, reservationID uuid.UUID, roomIDs []uuid.UUID) (*ChargeView, error) {
	reads := q.uow.CommandReads()
	res, err := reads.ReservationByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(res.UserID()) {
		return nil, reservation.ErrReservationNotOwned
	}

	now := q.clock.Now()
	policies, err := reads.CoveringPolicies(ctx, now)
	if err != nil {
		return nil, err
	}
	charge, err := q.engine.ComputeCancellationCharge(res, roomIDs, policies, now)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(roomIDs))
	copy(ids, roomIDs)
	return &ChargeView{
		ReservationID:       reservationID,
		RoomIDs:             ids,
		PolicyID:            charge.PolicyID,
		PolicyDescription:   charge.PolicyDescription,
		ChargePercentageBps: charge.ChargePercentage.BasisPoints(),
		MinimumChargeCents:  charge.MinimumCharge.Cents(),
		TotalCostCents:      charge.TotalCost.Cents(),
		ChargeCents:         charge.Charge.Cents(),
		RefundableCents:     charge.RefundAmount().Cents(),
		EvaluatedOn:         charge.EvaluatedOn,
	}, nil
}

func (q *cancellationQueriesImpl) ListPolicies(ctx context.Context) ([]PolicyView, error) {
	return q.store.ListPolicies(ctx)
}

func (q *cancellationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CancellationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, cancellation.ErrRequestNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *cancellationQueriesImpl) ListForRefund(ctx context.Context) ([]CancellationForRefundView, error) {
	items, err := q.store.ListForRefund(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoPendingRefunds
	}
	return items, nil
}

func (q *cancellationQueriesImpl) ListAll(ctx context.Context, filters CancellationFilters) ([]CancellationView, error) {
	if filters.Status != nil {
		if _, err := cancellation.ParseStatus(*filters.Status); err != nil {
			return nil, err
		}
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateFrom.After(*filters.DateTo) {
		return nil, ErrInvalidDateRange
	}
	items, err := q.store.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoCancellationsFound
	}
	return items, nil
}

func (q *cancellationQueriesImpl) GetRefundByID(ctx context.Context, id uuid.UUID) (*RefundView, error) {
	view, err := q.store.FindRefundByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, cancellation.ErrRefundNotFound
		}
		return nil, err
	}
	return view, nil
}
