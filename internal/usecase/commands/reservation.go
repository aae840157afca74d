package commands

import (
	"context"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput, actor user.Actor, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	AddGuests(ctx context.Context, reservationID uuid.UUID, guests []reservation.GuestDetail, actor user.Actor) (*AddGuestsResult, error)
}

type reservationUseCaseImpl struct {
	uow   shared.UnitOfWork
	calc  reservation.CostCalculator
	clock clock.Clock
	idem  idempotencyGuard
}

func NewReservationUseCase(uow shared.UnitOfWork, calc reservation.CostCalculator, clk clock.Clock, idempotencyTTL time.Duration) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:   uow,
		calc:  calc,
		clock: clk,
		idem:  idempotencyGuard{clock: clk, ttl: idempotencyTTL},
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	in CreateReservationInput,
	actor user.Actor,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	now := uc.clock.Now()
	stay, err := reservation.NewStayPeriod(in.CheckIn, in.CheckOut, now)
	if err != nil {
		return nil, err
	}

	var result CreateReservationResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = CreateReservationResult{}

		if idempotencyKey != nil {
			replayID, derr := uc.idem.begin(ctx, tx, *idempotencyKey, actor.ID, endpointCreateReservation, in)
			if derr != nil {
				return derr
			}
			if replayID != nil {
				result = CreateReservationResult{ReservationID: *replayID, IsReplayed: true}
				return nil
			}
		}

		rates, derr := shared.LoadRoomRates(ctx, tx.Reads(), in.RoomIDs)
		if derr != nil {
			return derr
		}
		res, derr := reservation.NewReservation(actor.ID, rates, stay)
		if derr != nil {
			return derr
		}
		costs, derr := uc.calc.ComputeRoomCosts(rates, stay)
		if derr != nil {
			return derr
		}

		id, derr := tx.Reservations().Create(ctx, res, costs)
		if derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return reservation.ErrRoomUnavailable
			}
			return derr
		}

		if derr = enqueueEvent(ctx, tx, now, shared.AggregateReservation, id, shared.EventReservationCreated, map[string]any{
			"reservation_id": id,
			"user_id":        actor.ID,
			"room_ids":       in.RoomIDs,
			"check_in":       stay.CheckIn().Format(time.DateOnly),
			"check_out":      stay.CheckOut().Format(time.DateOnly),
			"total_cents":    costs.Total.Cents(),
		}); derr != nil {
			return derr
		}

		if idempotencyKey != nil {
			if derr = uc.idem.complete(ctx, tx, *idempotencyKey, actor.ID, id); derr != nil {
				return derr
			}
		}
		result.ReservationID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *reservationUseCaseImpl) AddGuests(
	ctx context.Context,
	reservationID uuid.UUID,
	details []reservation.GuestDetail,
	actor user.Actor,
) (*AddGuestsResult, error) {
	var added int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := loadReservationForUpdate(ctx, tx, reservationID)
		if derr != nil {
			return derr
		}
		if !actor.CanActOn(res.UserID()) {
			return reservation.ErrReservationNotOwned
		}

		guests, derr := res.NewGuestBatch(details)
		if derr != nil {
			return derr
		}

		added, derr = tx.Guests().InsertBatch(ctx, guests)
		if derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return reservation.ErrRoomNotInReservation
			}
			return derr
		}

		return enqueueEvent(ctx, tx, uc.clock.Now(), shared.AggregateReservation, reservationID, shared.EventGuestsAdded, map[string]any{
			"reservation_id": reservationID,
			"guest_count":    added,
		})
	})
	if err != nil {
		return nil, err
	}
	return &AddGuestsResult{ReservationID: reservationID, Added: added}, nil
}

func loadReservationForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reads().ReservationByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}
