package request

import (
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const DateLayout = time.DateOnly

// RoomStayRequest is shared by the cost preview and the booking itself.
type RoomStayRequest struct {
	RoomIDs  []uuid.UUID `json:"room_ids" binding:"required,min=1"`
	CheckIn  string      `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string      `json:"check_out" binding:"required,datetime=2006-01-02"`
}

func (r RoomStayRequest) Dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = time.Parse(DateLayout, r.CheckIn); err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errs.ErrValidation)
	}
	if checkOut, err = time.Parse(DateLayout, r.CheckOut); err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errs.ErrValidation)
	}
	return checkIn, checkOut, nil
}

type RoomCostsRequest struct {
	RoomStayRequest
}

type CreateReservationRequest struct {
	RoomStayRequest
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	in, out, err := r.Dates()
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{RoomIDs: r.RoomIDs, CheckIn: in, CheckOut: out}, nil
}

type GuestRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	AgeGroup  string    `json:"age_group" binding:"required"`
	Address   string    `json:"address"`
	CountryID int       `json:"country_id" binding:"required"`
	StateID   int       `json:"state_id" binding:"required"`
}

// AddGuestsRequest only checks shape; field rules live with the guest entity.
type AddGuestsRequest struct {
	Guests []GuestRequest `json:"guests" binding:"required,min=1,dive"`
}

func (r AddGuestsRequest) ToDetails() ([]reservation.GuestDetail, error) {
	details := make([]reservation.GuestDetail, 0, len(r.Guests))
	if err := copier.Copy(&details, &r.Guests); err != nil {
		return nil, errs.Wrap(err, "failed to map guest details")
	}
	return details, nil
}
