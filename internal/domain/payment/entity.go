package payment

import (
	"strings"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxMethodLength = 50

var (
	ErrNonPositiveAmount = errs.Validation("payment amount must be greater than zero")
	ErrInvalidMethod     = errs.Validation("payment method is required and must be at most 50 characters")
	ErrInvalidStatus     = errs.Validation("payment status must be one of pending, completed, failed")
	ErrInvalidTransition = errs.DomainRule("invalid payment status transition")
	ErrFailureReason     = errs.Validation("failure reason is only allowed for failed payments")
	ErrPaymentNotFound   = errs.NotFound("payment not found")
)

type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        reservation.Money
	method        string
	status        Status
	failureReason *string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPayment records a Pending payment. The gateway outcome arrives later through UpdateStatus.
func NewPayment(reservationID uuid.UUID, amount reservation.Money, method string) (*Payment, error) {
	if amount.Cents() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	method = strings.TrimSpace(method)
	if method == "" || len(method) > maxMethodLength {
		return nil, ErrInvalidMethod
	}
	return &Payment{
		reservationID: reservationID,
		amount:        amount,
		method:        method,
		status:        StatusPending,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	amount reservation.Money,
	method string,
	status Status,
	failureReason *string,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		method:        method,
		status:        status,
		failureReason: failureReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID             { return p.id }
func (p *Payment) ReservationID() uuid.UUID  { return p.reservationID }
func (p *Payment) Amount() reservation.Money { return p.amount }
func (p *Payment) Method() string            { return p.method }
func (p *Payment) Status() Status            { return p.status }
func (p *Payment) FailureReason() *string    { return p.failureReason }
func (p *Payment) CreatedAt() time.Time      { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time      { return p.updatedAt }

// CheckTransition allows only pending -> completed and pending -> failed.
func CheckTransition(from, to Status, failureReason *string) error {
	if from != StatusPending || !to.IsTerminal() {
		return ErrInvalidTransition
	}
	if failureReason != nil && to != StatusFailed {
		return ErrFailureReason
	}
	return nil
}
