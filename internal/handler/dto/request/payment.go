package request

import (
	"hotel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type RecordPaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	AmountCents   int64     `json:"amount_cents" binding:"required"`
	Method        string    `json:"method" binding:"required"`
}

func (r RecordPaymentRequest) ToInput() commands.RecordPaymentInput {
	return commands.RecordPaymentInput{
		ReservationID: r.ReservationID,
		AmountCents:   r.AmountCents,
		Method:        r.Method,
	}
}

type UpdatePaymentStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

func (r UpdatePaymentStatusRequest) ToInput() commands.UpdatePaymentStatusInput {
	return commands.UpdatePaymentStatusInput{Status: r.Status, FailureReason: r.FailureReason}
}
