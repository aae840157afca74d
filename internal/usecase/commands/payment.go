package commands

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

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment.go -package=commandsmock

type PaymentCommands interface {
	RecordPayment(ctx context.Context, in RecordPaymentInput, actor user.Actor, idempotencyKey *uuid.UUID) (*RecordPaymentResult, error)
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, in UpdatePaymentStatusInput) error
}

type paymentUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	idem  idempotencyGuard
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, idempotencyTTL time.Duration) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:   uow,
		clock: clk,
		idem:  idempotencyGuard{clock: clk, ttl: idempotencyTTL},
	}
}

func (uc *paymentUseCaseImpl) RecordPayment(
	ctx context.Context,
	in RecordPaymentInput,
	actor user.Actor,
	idempotencyKey *uuid.UUID,
) (*RecordPaymentResult, error) {
	if in.AmountCents <= 0 {
		return nil, payment.ErrNonPositiveAmount
	}
	p, err := payment.NewPayment(in.ReservationID, reservation.MustMoney(in.AmountCents), in.Method)
	if err != nil {
		return nil, err
	}

	var result RecordPaymentResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = RecordPaymentResult{}

		if idempotencyKey != nil {
			replayID, derr := uc.idem.begin(ctx, tx, *idempotencyKey, actor.ID, endpointRecordPayment, in)
			if derr != nil {
				return derr
			}
			if replayID != nil {
				result = RecordPaymentResult{PaymentID: *replayID, IsReplayed: true}
				return nil
			}
		}

		// the row lock keeps a concurrent cancellation from slipping in between the check and the insert
		res, derr := loadReservationForUpdate(ctx, tx, in.ReservationID)
		if derr != nil {
			return derr
		}
		if !actor.CanActOn(res.UserID()) {
			return reservation.ErrReservationNotOwned
		}
		if derr = res.EnsurePayable(); derr != nil {
			return derr
		}

		id, derr := tx.Payments().Create(ctx, p)
		if derr != nil {
			return derr
		}

		if derr = enqueueEvent(ctx, tx, uc.clock.Now(), shared.AggregatePayment, id, shared.EventPaymentRecorded, map[string]any{
			"payment_id":     id,
			"reservation_id": in.ReservationID,
			"amount_cents":   p.Amount().Cents(),
			"method":         p.Method(),
		}); derr != nil {
			return derr
		}

		if idempotencyKey != nil {
			if derr = uc.idem.complete(ctx, tx, *idempotencyKey, actor.ID, id); derr != nil {
				return derr
			}
		}
		result.PaymentID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *paymentUseCaseImpl) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, in UpdatePaymentStatusInput) error {
	next, err := payment.ParseStatus(in.Status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Reads().PaymentByID(ctx, paymentID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return payment.ErrPaymentNotFound
			}
			return derr
		}
		if derr = payment.CheckTransition(current.Status(), next, in.FailureReason); derr != nil {
			return derr
		}

		if derr = tx.Payments().UpdateStatus(ctx, paymentID, current.Status(), next, in.FailureReason); derr != nil {
			if infra.IsKind(derr, infra.KindPreconditionFailed) {
				return payment.ErrInvalidTransition
			}
			return derr
		}

		return enqueueEvent(ctx, tx, uc.clock.Now(), shared.AggregatePayment, paymentID, shared.EventPaymentStatusChanged, map[string]any{
			"payment_id":     paymentID,
			"reservation_id": current.ReservationID(),
			"from":           current.Status(),
			"to":             next,
			"failure_reason": in.FailureReason,
		})
	})
}
