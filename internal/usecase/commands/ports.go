package commands

import (
	"time"

	"github.com/google/uuid"
)

// Command inputs are plain values; the HTTP layer maps request DTOs onto them.

type CreateReservationInput struct {
	RoomIDs  []uuid.UUID `json:"room_ids"`
	CheckIn  time.Time   `json:"check_in"`
	CheckOut time.Time   `json:"check_out"`
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	IsReplayed    bool
}

type AddGuestsResult struct {
	ReservationID uuid.UUID
	Added         int64
}

type RecordPaymentInput struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
}

type RecordPaymentResult struct {
	PaymentID  uuid.UUID
	IsReplayed bool
}

type UpdatePaymentStatusInput struct {
	Status        string
	FailureReason *string
}

type CreateCancellationInput struct {
	ReservationID uuid.UUID
	RoomIDs       []uuid.UUID
	Reason        *string
}

type CreateCancellationResult struct {
	CancellationID uuid.UUID
}

type ReviewCancellationInput struct {
	Decision string
}

type ProcessRefundInput struct {
	CancellationRequestID uuid.UUID
	RefundMethodID        int
}

type ProcessRefundResult struct {
	RefundID uuid.UUID
}

type UpdateRefundStatusInput struct {
	Status string
}
