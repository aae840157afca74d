package request

import (
	"hotel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProcessRefundRequest struct {
	CancellationRequestID uuid.UUID `json:"cancellation_request_id" binding:"required"`
	RefundMethodID        int       `json:"refund_method_id" binding:"required"`
}

func (r ProcessRefundRequest) ToInput() commands.ProcessRefundInput {
	return commands.ProcessRefundInput{
		CancellationRequestID: r.CancellationRequestID,
		RefundMethodID:        r.RefundMethodID,
	}
}

type UpdateRefundStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
