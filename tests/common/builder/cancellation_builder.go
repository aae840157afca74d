//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CancellationBuilder struct {
	ID                  uuid.UUID
	ReservationID       uuid.UUID
	UserID              uuid.UUID
	RoomIDs             []uuid.UUID
	Reason              *string
	Type                string
	Status              string
	PolicyID            uuid.UUID
	ChargePercentageBps int64
	TotalCostCents      int64
	ChargeCents         int64
	RequestedOn         time.Time
}

func NewCancellationBuilder() *CancellationBuilder {
	reason := "change of plans"
	return &CancellationBuilder{
		ID:                  uuid.New(),
		ReservationID:       uuid.New(),
		UserID:              uuid.New(),
		RoomIDs:             []uuid.UUID{uuid.New()},
		Reason:              &reason,
		Type:                "full",
		Status:              "requested",
		PolicyID:            uuid.New(),
		ChargePercentageBps: 2000,
		TotalCostCents:      33000,
		ChargeCents:         6600,
		RequestedOn:         time.Now().UTC(),
	}
}

func (b *CancellationBuilder) With(mutate func(*CancellationBuilder)) *CancellationBuilder {
	mutate(b)
	return b
}

func (b *CancellationBuilder) BuildChargesRequestDTO() reqdto.CancellationChargesRequest {
	return reqdto.CancellationChargesRequest{ReservationID: b.ReservationID, RoomIDs: b.RoomIDs}
}

func (b *CancellationBuilder) BuildCreateRequestDTO() reqdto.CreateCancellationRequest {
	return reqdto.CreateCancellationRequest{ReservationID: b.ReservationID, RoomIDs: b.RoomIDs, Reason: b.Reason}
}

func (b *CancellationBuilder) BuildView() *queries.CancellationView {
	return &queries.CancellationView{
		ID:                  b.ID,
		ReservationID:       b.ReservationID,
		UserID:              b.UserID,
		RoomIDs:             b.RoomIDs,
		Reason:              b.Reason,
		Type:                b.Type,
		Status:              b.Status,
		PolicyID:            b.PolicyID,
		PolicyDescription:   "standard",
		ChargePercentageBps: b.ChargePercentageBps,
		TotalCostCents:      b.TotalCostCents,
		ChargeCents:         b.ChargeCents,
		RefundableCents:     b.TotalCostCents - b.ChargeCents,
		RequestedOn:         b.RequestedOn,
	}
}

func (b *CancellationBuilder) BuildChargeView() *queries.ChargeView {
	return &queries.ChargeView{
		ReservationID:       b.ReservationID,
		RoomIDs:             b.RoomIDs,
		PolicyID:            b.PolicyID,
		PolicyDescription:   "standard",
		ChargePercentageBps: b.ChargePercentageBps,
		TotalCostCents:      b.TotalCostCents,
		ChargeCents:         b.ChargeCents,
		RefundableCents:     b.TotalCostCents - b.ChargeCents,
		EvaluatedOn:         b.RequestedOn,
	}
}

func (b *CancellationBuilder) BuildPolicyView() queries.PolicyView {
	from := b.RequestedOn.AddDate(0, -1, 0)
	return queries.PolicyView{
		ID:                  b.PolicyID,
		Description:         "standard",
		ChargePercentageBps: b.ChargePercentageBps,
		EffectiveFrom:       from,
		EffectiveTo:         from.AddDate(1, 0, 0),
	}
}

func (b *CancellationBuilder) BuildRefundView(status string) *queries.RefundView {
	return &queries.RefundView{
		ID:                    uuid.New(),
		CancellationRequestID: b.ID,
		RefundMethodID:        1,
		RefundMethod:          "original_payment",
		AmountCents:           b.TotalCostCents - b.ChargeCents,
		Status:                status,
		ProcessedBy:           uuid.New(),
		CreatedAt:             b.RequestedOn,
		UpdatedAt:             b.RequestedOn,
	}
}
