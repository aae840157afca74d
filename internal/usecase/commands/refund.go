package commands

import (
	"context"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=refund.go -destination=../../../tests/mock/commands/refund.go -package=commandsmock

type RefundCommands interface {
	ProcessRefund(ctx context.Context, in ProcessRefundInput, admin user.Actor) (*ProcessRefundResult, error)
	UpdateRefundStatus(ctx context.Context, refundID uuid.UUID, in UpdateRefundStatusInput) error
}

type refundUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRefundUseCase(uow shared.UnitOfWork, clk clock.Clock) RefundCommands {
	return &refundUseCaseImpl{uow: uow, clock: clk}
}

func (uc *refundUseCaseImpl) ProcessRefund(ctx context.Context, in ProcessRefundInput, admin user.Actor) (*ProcessRefundResult, error) {
	var refundID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, derr := loadCancellation(ctx, tx, in.CancellationRequestID)
		if derr != nil {
			return derr
		}
		refund, derr := cancellation.NewRefund(req, admin.ID, in.RefundMethodID)
		if derr != nil {
			return derr
		}
		exists, derr := tx.Reads().RefundMethodExists(ctx, in.RefundMethodID)
		if derr != nil {
			return derr
		}
		if !exists {
			return cancellation.ErrRefundMethodNotFound
		}

		// UNIQUE(cancellation_request_id) lets exactly one concurrent caller through
		refundID, derr = tx.Refunds().Create(ctx, refund)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return cancellation.ErrRefundAlreadyExists
			}
			return derr
		}
		if derr = tx.Cancellations().UpdateStatus(ctx, req.ID(), cancellation.StatusApproved, cancellation.StatusRefundPending, nil, nil); derr != nil {
			if infra.IsKind(derr, infra.KindPreconditionFailed) {
				return cancellation.ErrNotApproved
			}
			return derr
		}

		return enqueueEvent(ctx, tx, uc.clock.Now(), shared.AggregateRefund, refundID, shared.EventRefundCreated, map[string]any{
			"refund_id":       refundID,
			"cancellation_id": req.ID(),
			"amount_cents":    refund.Amount().Cents(),
			"refund_method":   in.RefundMethodID,
			"processed_by":    admin.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ProcessRefundResult{RefundID: refundID}, nil
}

func (uc *refundUseCaseImpl) UpdateRefundStatus(ctx context.Context, refundID uuid.UUID, in UpdateRefundStatusInput) error {
	next, err := cancellation.ParseRefundStatus(in.Status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Reads().RefundByID(ctx, refundID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return cancellation.ErrRefundNotFound
			}
			return derr
		}
		if derr = cancellation.CheckRefundTransition(current.Status(), next); derr != nil {
			return derr
		}
		if derr = tx.Refunds().UpdateStatus(ctx, refundID, current.Status(), next); derr != nil {
			if infra.IsKind(derr, infra.KindPreconditionFailed) {
				return cancellation.ErrInvalidRefundUpdate
			}
			return derr
		}

		if next == cancellation.RefundStatusProcessed {
			derr = tx.Cancellations().UpdateStatus(ctx, current.CancellationRequestID(),
				cancellation.StatusRefundPending, cancellation.StatusRefundProcessed, nil, nil)
			if derr != nil {
				if infra.IsKind(derr, infra.KindPreconditionFailed) {
					return cancellation.ErrInvalidTransition
				}
				return derr
			}
		}

		return enqueueEvent(ctx, tx, uc.clock.Now(), shared.AggregateRefund, refundID, shared.EventRefundStatusChanged, map[string]any{
			"refund_id":       refundID,
			"cancellation_id": current.CancellationRequestID(),
			"from":            current.Status(),
			"to":              next,
		})
	})
}
