package commands

import (
	"context"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=cancellation.go -destination=../../../tests/mock/commands/cancellation.go -package=commandsmock

type CancellationCommands interface {
	CreateCancellationRequest(ctx context.Context, in CreateCancellationInput, actor user.Actor) (*CreateCancellationResult, error)
	ReviewCancellationRequest(ctx context.Context, id uuid.UUID, in ReviewCancellationInput, admin user.Actor) error
}

type cancellationUseCaseImpl struct {
	uow    shared.UnitOfWork
	engine *cancellation.PolicyEngine
	clock  clock.Clock
}

func NewCancellationUseCase(uow shared.UnitOfWork, engine *cancellation.PolicyEngine, clk clock.Clock) CancellationCommands {
	return &cancellationUseCaseImpl{uow: uow, engine: engine, clock: clk}
}

func (uc *cancellationUseCaseImpl) CreateCancellationRequest(
	ctx context.Context,
	in CreateCancellationInput,
	actor user.Actor,
) (*CreateCancellationResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// locking the reservation serializes requests against the same rooms
		res, derr := loadReservationForUpdate(ctx, tx, in.ReservationID)
		if derr != nil {
			return derr
		}
		if !actor.CanActOn(res.UserID()) {
			return reservation.ErrReservationNotOwned
		}
		if derr = res.EnsureActive(); derr != nil {
			return derr
		}

		open, derr := tx.Reads().OpenCancellationRoomIDs(ctx, res.ID())
		if derr != nil {
			return derr
		}
		if overlapsAny(in.RoomIDs, open) {
			return cancellation.ErrRoomsAlreadyRequested
		}

		now := uc.clock.Now()
		policies, derr := tx.Reads().CoveringPolicies(ctx, now)
		if derr != nil {
			return derr
		}
		charge, derr := uc.engine.ComputeCancellationCharge(res, in.RoomIDs, policies, now)
		if derr != nil {
			return derr
		}

		req, derr := cancellation.NewRequest(res, actor, in.RoomIDs, in.Reason, charge, now)
		if derr != nil {
			return derr
		}
		createdID, derr = tx.Cancellations().Create(ctx, req)
		if derr != nil {
			return derr
		}

		return enqueueEvent(ctx, tx, now, shared.AggregateCancellation, createdID, shared.EventCancellationRequested, map[string]any{
			"cancellation_id": createdID,
			"reservation_id":  res.ID(),
			"room_ids":        req.RoomIDs(),
			"type":            req.Type(),
			"charge_cents":    charge.Charge.Cents(),
			"refund_cents":    charge.RefundAmount().Cents(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &CreateCancellationResult{CancellationID: createdID}, nil
}

func (uc *cancellationUseCaseImpl) ReviewCancellationRequest(
	ctx context.Context,
	id uuid.UUID,
	in ReviewCancellationInput,
	admin user.Actor,
) error {
	decision, err := cancellation.ParseDecision(in.Decision)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, derr := loadCancellation(ctx, tx, id)
		if derr != nil {
			return derr
		}
		res, derr := loadReservationForUpdate(ctx, tx, req.ReservationID())
		if derr != nil {
			return derr
		}

		previous := req.Status()
		now := uc.clock.Now()
		if derr = req.Review(admin.ID, decision, now); derr != nil {
			return derr
		}
		if derr = tx.Cancellations().UpdateStatus(ctx, id, previous, req.Status(), req.ReviewedBy(), req.ReviewedOn()); derr != nil {
			if infra.IsKind(derr, infra.KindPreconditionFailed) {
				return cancellation.ErrInvalidTransition
			}
			return derr
		}

		if decision == cancellation.DecisionApproved {
			if derr = uc.releaseRooms(ctx, tx, res, req.RoomIDs()); derr != nil {
				return derr
			}
		}

		return enqueueEvent(ctx, tx, now, shared.AggregateCancellation, id, shared.EventCancellationReviewed, map[string]any{
			"cancellation_id":    id,
			"reservation_id":     res.ID(),
			"decision":           decision,
			"reviewed_by":        admin.ID,
			"reservation_status": res.Status(),
		})
	})
}

// releaseRooms frees the approved rooms and cancels the reservation when none is left.
func (uc *cancellationUseCaseImpl) releaseRooms(ctx context.Context, tx shared.Tx, res *reservation.Reservation, roomIDs []uuid.UUID) error {
	if err := res.ReleaseRooms(roomIDs); err != nil {
		return err
	}
	if err := tx.Reservations().ReleaseRooms(ctx, res.ID(), roomIDs); err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return reservation.ErrRoomAlreadyReleased
		}
		return err
	}
	if res.Status() == reservation.StatusCancelled {
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), reservation.StatusActive, reservation.StatusCancelled); err != nil {
			if infra.IsKind(err, infra.KindPreconditionFailed) {
				return reservation.ErrReservationNotActive
			}
			return err
		}
	}
	return nil
}

func loadCancellation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*cancellation.Request, error) {
	req, err := tx.Reads().CancellationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, cancellation.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func overlapsAny(ids, others []uuid.UUID) bool {
	set := make(map[uuid.UUID]struct{}, len(others))
	for _, id := range others {
		set[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
