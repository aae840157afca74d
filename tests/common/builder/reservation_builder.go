//go:build unit || e2e

package builder

import (
	"strconv"
	"time"

	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	RoomIDs    []uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	RateCents  int64
	TaxRateBps int64
	Status     string
	CreatedAt  time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	checkIn := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 1, 0)
	return &ReservationBuilder{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		RoomIDs:    []uuid.UUID{uuid.New()},
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 2),
		RateCents:  10000,
		TaxRateBps: 1000,
		Status:     "active",
		CreatedAt:  time.Now().UTC(),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func (b *ReservationBuilder) BuildStayRequestDTO() reqdto.RoomStayRequest {
	return reqdto.RoomStayRequest{
		RoomIDs:  b.RoomIDs,
		CheckIn:  b.CheckIn.Format(reqdto.DateLayout),
		CheckOut: b.CheckOut.Format(reqdto.DateLayout),
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{RoomStayRequest: b.BuildStayRequestDTO()}
}

func (b *ReservationBuilder) BuildRoomCostsRequestDTO() reqdto.RoomCostsRequest {
	return reqdto.RoomCostsRequest{RoomStayRequest: b.BuildStayRequestDTO()}
}

func (b *ReservationBuilder) BuildGuestRequestDTO() reqdto.GuestRequest {
	return reqdto.GuestRequest{
		RoomID:    b.RoomIDs[0],
		FirstName: "Hanako",
		LastName:  "Yamada",
		Email:     "hanako@example.com",
		Phone:     "+819012345678",
		AgeGroup:  "adult",
		CountryID: 1,
		StateID:   13,
	}
}

func (b *ReservationBuilder) BuildAddGuestsRequestDTO() reqdto.AddGuestsRequest {
	return reqdto.AddGuestsRequest{Guests: []reqdto.GuestRequest{b.BuildGuestRequestDTO()}}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	nights := b.nights()
	rooms := make([]queries.ReservationRoomView, len(b.RoomIDs))
	for i, id := range b.RoomIDs {
		rooms[i] = queries.ReservationRoomView{
			RoomID:           id,
			RoomNumber:       strconv.Itoa(101 + i),
			RoomType:         "standard",
			NightlyRateCents: b.RateCents,
			Status:           b.Status,
		}
	}
	subtotal := b.RateCents * int64(nights) * int64(len(b.RoomIDs))
	tax := subtotal * b.TaxRateBps / 10000
	return &queries.ReservationView{
		ID:            b.ID,
		UserID:        b.UserID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        nights,
		Status:        b.Status,
		SubtotalCents: subtotal,
		TaxRateBps:    b.TaxRateBps,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
		Rooms:         rooms,
		Guests:        []queries.GuestView{},
		Payments:      []queries.PaymentView{},
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildRoomCostView() *queries.RoomCostView {
	v := b.BuildView()
	lines := make([]queries.RoomCostLineView, len(v.Rooms))
	for i, r := range v.Rooms {
		lines[i] = queries.RoomCostLineView{
			RoomID:           r.RoomID,
			RoomNumber:       r.RoomNumber,
			NightlyRateCents: r.NightlyRateCents,
			Nights:           v.Nights,
			LineTotalCents:   r.NightlyRateCents * int64(v.Nights),
		}
	}
	return &queries.RoomCostView{
		CheckIn:       v.CheckIn,
		CheckOut:      v.CheckOut,
		Nights:        v.Nights,
		Rooms:         lines,
		SubtotalCents: v.SubtotalCents,
		TaxRateBps:    v.TaxRateBps,
		TaxCents:      v.TaxCents,
		TotalCents:    v.TotalCents,
	}
}

func (b *ReservationBuilder) BuildPaymentRequestDTO(amountCents int64) reqdto.RecordPaymentRequest {
	return reqdto.RecordPaymentRequest{
		ReservationID: b.ID,
		AmountCents:   amountCents,
		Method:        "credit_card",
	}
}

func (b *ReservationBuilder) BuildPaymentView(amountCents int64, status string) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            uuid.New(),
		ReservationID: b.ID,
		AmountCents:   amountCents,
		Method:        "credit_card",
		Status:        status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}
