package response

import (
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const dateLayout = time.DateOnly

type ReservationResponse struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	CheckIn       string                `json:"check_in" copier:"-"`
	CheckOut      string                `json:"check_out" copier:"-"`
	Nights        int                   `json:"nights"`
	Status        string                `json:"status"`
	SubtotalCents int64                 `json:"subtotal_cents"`
	TaxRateBps    int64                 `json:"tax_rate_bps"`
	TaxCents      int64                 `json:"tax_cents"`
	TotalCents    int64                 `json:"total_cents"`
	Rooms         []ReservationRoomItem `json:"rooms"`
	Guests        []GuestItem           `json:"guests"`
	Payments      []PaymentResponse     `json:"payments"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type ReservationRoomItem struct {
	RoomID           uuid.UUID `json:"room_id"`
	RoomNumber       string    `json:"room_number"`
	RoomType         string    `json:"room_type"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Status           string    `json:"status"`
}

type GuestItem struct {
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

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	FailureReason *string   `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RoomCostResponse struct {
	CheckIn       string         `json:"check_in" copier:"-"`
	CheckOut      string         `json:"check_out" copier:"-"`
	Nights        int            `json:"nights"`
	Rooms         []RoomCostItem `json:"rooms"`
	SubtotalCents int64          `json:"subtotal_cents"`
	TaxRateBps    int64          `json:"tax_rate_bps"`
	TaxCents      int64          `json:"tax_cents"`
	TotalCents    int64          `json:"total_cents"`
}

type RoomCostItem struct {
	RoomID           uuid.UUID `json:"room_id"`
	RoomNumber       string    `json:"room_number"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Nights           int       `json:"nights"`
	LineTotalCents   int64     `json:"line_total_cents"`
}

// Created carries the id of a new record; Replayed is set when an Idempotency-Key returned an earlier result.
type Created struct {
	ID       uuid.UUID `json:"id"`
	Replayed bool      `json:"replayed,omitempty"`
}

type GuestsAdded struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Added         int64     `json:"added"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, v)
	resp.CheckIn = v.CheckIn.Format(dateLayout)
	resp.CheckOut = v.CheckOut.Format(dateLayout)
	return resp
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	resp := &PaymentResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromRoomCostView(v *queries.RoomCostView) *RoomCostResponse {
	resp := &RoomCostResponse{}
	_ = copier.Copy(resp, v)
	resp.CheckIn = v.CheckIn.Format(dateLayout)
	resp.CheckOut = v.CheckOut.Format(dateLayout)
	return resp
}
