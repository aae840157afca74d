package response

import (
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PolicyResponse struct {
	ID                  uuid.UUID `json:"id"`
	Description         string    `json:"description"`
	ChargePercentageBps int64     `json:"charge_percentage_bps"`
	MinimumChargeCents  int64     `json:"minimum_charge_cents"`
	EffectiveFrom       string    `json:"effective_from" copier:"-"`
	EffectiveTo         string    `json:"effective_to" copier:"-"`
}

type ChargeResponse struct {
	ReservationID       uuid.UUID   `json:"reservation_id"`
	RoomIDs             []uuid.UUID `json:"room_ids"`
	PolicyID            uuid.UUID   `json:"policy_id"`
	PolicyDescription   string      `json:"policy_description"`
	ChargePercentageBps int64       `json:"charge_percentage_bps"`
	MinimumChargeCents  int64       `json:"minimum_charge_cents"`
	TotalCostCents      int64       `json:"total_cost_cents"`
	ChargeCents         int64       `json:"charge_cents"`
	RefundableCents     int64       `json:"refundable_cents"`
	EvaluatedOn         string      `json:"evaluated_on" copier:"-"`
}

type CancellationResponse struct {
	ID                  uuid.UUID   `json:"id"`
	ReservationID       uuid.UUID   `json:"reservation_id"`
	UserID              uuid.UUID   `json:"user_id"`
	RoomIDs             []uuid.UUID `json:"room_ids"`
	Reason              *string     `json:"reason,omitempty"`
	Type                string      `json:"type"`
	Status              string      `json:"status"`
	PolicyID            uuid.UUID   `json:"policy_id"`
	PolicyDescription   string      `json:"policy_description"`
	ChargePercentageBps int64       `json:"charge_percentage_bps"`
	TotalCostCents      int64       `json:"total_cost_cents"`
	ChargeCents         int64       `json:"charge_cents"`
	RefundableCents     int64       `json:"refundable_cents"`
	RequestedOn         time.Time   `json:"requested_on"`
	ReviewedBy          *uuid.UUID  `json:"reviewed_by,omitempty"`
	ReviewedOn          *time.Time  `json:"reviewed_on,omitempty"`
}

type CancellationForRefundResponse struct {
	CancellationResponse
	RefundID     *uuid.UUID `json:"refund_id,omitempty"`
	RefundStatus *string    `json:"refund_status,omitempty"`
}

type RefundResponse struct {
	ID                    uuid.UUID `json:"id"`
	CancellationRequestID uuid.UUID `json:"cancellation_request_id"`
	RefundMethodID        int       `json:"refund_method_id"`
	RefundMethod          string    `json:"refund_method"`
	AmountCents           int64     `json:"amount_cents"`
	Status                string    `json:"status"`
	ProcessedBy           uuid.UUID `json:"processed_by"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func FromPolicyViews(items []queries.PolicyView) []PolicyResponse {
	out := make([]PolicyResponse, len(items))
	for i := range items {
		_ = copier.Copy(&out[i], &items[i])
		out[i].EffectiveFrom = items[i].EffectiveFrom.Format(dateLayout)
		out[i].EffectiveTo = items[i].EffectiveTo.Format(dateLayout)
	}
	return out
}

func FromChargeView(v *queries.ChargeView) *ChargeResponse {
	resp := &ChargeResponse{}
	_ = copier.Copy(resp, v)
	resp.EvaluatedOn = v.EvaluatedOn.Format(dateLayout)
	return resp
}

func FromCancellationView(v *queries.CancellationView) *CancellationResponse {
	resp := &CancellationResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromCancellationViews(items []queries.CancellationView) []CancellationResponse {
	out := make([]CancellationResponse, len(items))
	for i := range items {
		out[i] = *FromCancellationView(&items[i])
	}
	return out
}

func FromCancellationsForRefund(items []queries.CancellationForRefundView) []CancellationForRefundResponse {
	out := make([]CancellationForRefundResponse, len(items))
	for i := range items {
		out[i] = CancellationForRefundResponse{
			CancellationResponse: *FromCancellationView(&items[i].CancellationView),
			RefundID:             items[i].RefundID,
			RefundStatus:         items[i].RefundStatus,
		}
	}
	return out
}

func FromRefundView(v *queries.RefundView) *RefundResponse {
	resp := &RefundResponse{}
	_ = copier.Copy(resp, v)
	return resp
}
