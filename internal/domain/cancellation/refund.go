package cancellation

import (
	"time"

	"hotel-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type Refund struct {
	id                    uuid.UUID
	cancellationRequestID uuid.UUID
	methodID              int
	amount                reservation.Money
	status                RefundStatus
	processedBy           uuid.UUID
	createdAt             time.Time
	updatedAt             time.Time
}

// NewRefund creates the Pending refund of an Approved request, for the amount priced when it was raised.
func NewRefund(req *Request, processedBy uuid.UUID, methodID int) (*Refund, error) {
	if req.Status() != StatusApproved {
		if req.Status() == StatusRefundPending || req.Status() == StatusRefundProcessed {
			return nil, ErrRefundAlreadyExists
		}
		return nil, ErrNotApproved
	}
	if methodID <= 0 {
		return nil, ErrInvalidRefundMethod
	}
	return &Refund{
		cancellationRequestID: req.ID(),
		methodID:              methodID,
		amount:                req.Charge().RefundAmount(),
		status:                RefundStatusPending,
		processedBy:           processedBy,
	}, nil
}

func ReconstructRefund(
	id, cancellationRequestID uuid.UUID,
	methodID int,
	amount reservation.Money,
	status RefundStatus,
	processedBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Refund {
	return &Refund{
		id:                    id,
		cancellationRequestID: cancellationRequestID,
		methodID:              methodID,
		amount:                amount,
		status:                status,
		processedBy:           processedBy,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func (r *Refund) ID() uuid.UUID                    { return r.id }
func (r *Refund) CancellationRequestID() uuid.UUID { return r.cancellationRequestID }
func (r *Refund) MethodID() int                    { return r.methodID }
func (r *Refund) Amount() reservation.Money        { return r.amount }
func (r *Refund) Status() RefundStatus             { return r.status }
func (r *Refund) ProcessedBy() uuid.UUID           { return r.processedBy }
func (r *Refund) CreatedAt() time.Time             { return r.createdAt }
func (r *Refund) UpdatedAt() time.Time             { return r.updatedAt }

// CheckRefundTransition allows only pending -> processed and pending -> failed.
func CheckRefundTransition(from, to RefundStatus) error {
	if from != RefundStatusPending || (to != RefundStatusProcessed && to != RefundStatusFailed) {
		return ErrInvalidRefundUpdate
	}
	return nil
}
