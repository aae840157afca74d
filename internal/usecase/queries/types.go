package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	CheckIn       time.Time             `json:"check_in"`
	CheckOut      time.Time             `json:"check_out"`
	Nights        int                   `json:"nights"`
	Status        string                `json:"status"`
	SubtotalCents int64                 `json:"subtotal_cents"`
	TaxRateBps    int64                 `json:"tax_rate_bps"`
	TaxCents      int64                 `json:"tax_cents"`
	TotalCents    int64                 `json:"total_cents"`
	Rooms         []ReservationRoomView `json:"rooms"`
	Guests        []GuestView           `json:"guests"`
	Payments      []PaymentView         `json:"payments"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type ReservationRoomView struct {
	RoomID           uuid.UUID `json:"room_id"`
	RoomNumber       string    `json:"room_number"`
	RoomType         string    `json:"room_type"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Status           string    `json:"status"`
}

type GuestView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	AgeGroup  string    `json:"age_group"`
	Address   *string   `json:"address,omitempty"`
	CountryID int       `json:"country_id"`
	StateID   int       `json:"state_id"`
}

type PaymentView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	FailureReason *string   `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RoomCostLineView struct {
	RoomID           uuid.UUID `json:"room_id"`
	RoomNumber       string    `json:"room_number"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Nights           int       `json:"nights"`
	LineTotalCents   int64     `json:"line_total_cents"`
}

type RoomCostView struct {
	CheckIn       time.Time          `json:"check_in"`
	CheckOut      time.Time          `json:"check_out"`
	Nights        int                `json:"nights"`
	Rooms         []RoomCostLineView `json:"rooms"`
	SubtotalCents int64              `json:"subtotal_cents"`
	TaxRateBps    int64              `json:"tax_rate_bps"`
	TaxCents      int64              `json:"tax_cents"`
	TotalCents    int64              `json:"total_cents"`
}

type PolicyView struct {
	ID                  uuid.UUID `json:"id"`
	Description         string    `json:"description"`
	ChargePercentageBps int64     `json:"charge_percentage_bps"`
	MinimumChargeCents  int64     `json:"minimum_charge_cents"`
	EffectiveFrom       time.Time `json:"effective_from"`
	EffectiveTo         time.Time `json:"effective_to"`
}

type ChargeView struct {
	ReservationID       uuid.UUID   `json:"reservation_id"`
	RoomIDs             []uuid.UUID `json:"room_ids"`
	PolicyID            uuid.UUID   `json:"policy_id"`
	PolicyDescription   string      `json:"policy_description"`
	ChargePercentageBps int64       `json:"charge_percentage_bps"`
	MinimumChargeCents  int64       `json:"minimum_charge_cents"`
	TotalCostCents      int64       `json:"total_cost_cents"`
	ChargeCents         int64       `json:"charge_cents"`
	RefundableCents     int64       `json:"refundable_cents"`
	EvaluatedOn         time.Time   `json:"evaluated_on"`
}

type CancellationView struct {
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

// CancellationForRefundView is an approved request that still awaits a processed refund.
type CancellationForRefundView struct {
	CancellationView
	RefundID     *uuid.UUID `json:"refund_id,omitempty"`
	RefundStatus *string    `json:"refund_status,omitempty"`
}

type RefundView struct {
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

type CancellationFilters struct {
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}
