package reservation

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrNoGuests = errs.Validation("at least one guest detail must be provided")

var guestValidate = newGuestValidator()

func newGuestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("age_group", func(fl validator.FieldLevel) bool {
		switch AgeGroup(fl.Field().String()) {
		case AgeGroupAdult, AgeGroupChild, AgeGroupInfant:
			return true
		default:
			return false
		}
	}); err != nil {
		panic(err)
	}
	return v
}

type GuestDetail struct {
	RoomID    uuid.UUID `validate:"required"`
	FirstName string    `validate:"required,max=50"`
	LastName  string    `validate:"required,max=50"`
	Email     string    `validate:"omitempty,email,max=100"`
	Phone     string    `validate:"omitempty,e164"`
	AgeGroup  AgeGroup  `validate:"required,age_group"`
	Address   string    `validate:"max=255"`
	CountryID int       `validate:"required,gt=0"`
	StateID   int       `validate:"required,gt=0"`
}

type Guest struct {
	id            uuid.UUID
	reservationID uuid.UUID
	detail        GuestDetail
}

func NewGuest(reservationID uuid.UUID, d GuestDetail) (*Guest, error) {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.AgeGroup = AgeGroup(strings.ToLower(string(d.AgeGroup)))

	if err := guestValidate.Struct(d); err != nil {
		return nil, translateGuestErrors(err)
	}
	return &Guest{reservationID: reservationID, detail: d}, nil
}

func ReconstructGuest(id, reservationID uuid.UUID, d GuestDetail) *Guest {
	return &Guest{id: id, reservationID: reservationID, detail: d}
}

func (g *Guest) ID() uuid.UUID            { return g.id }
func (g *Guest) ReservationID() uuid.UUID { return g.reservationID }
func (g *Guest) Detail() GuestDetail      { return g.detail }

// NewGuestBatch validates every guest against the reservation; any bad entry rejects the whole batch.
func (r *Reservation) NewGuestBatch(details []GuestDetail) ([]*Guest, error) {
	if len(details) == 0 {
		return nil, ErrNoGuests
	}
	if err := r.EnsureActive(); err != nil {
		return nil, err
	}
	active := make(map[uuid.UUID]struct{}, len(r.rooms))
	for _, id := range r.ActiveRoomIDs() {
		active[id] = struct{}{}
	}

	guests := make([]*Guest, 0, len(details))
	for i, d := range details {
		if _, ok := active[d.RoomID]; !ok {
			return nil, errs.Wrapf(ErrRoomNotInReservation, "guest %d", i+1)
		}
		g, err := NewGuest(r.id, d)
		if err != nil {
			return nil, errs.Wrapf(err, "guest %d", i+1)
		}
		guests = append(guests, g)
	}
	return guests, nil
}

func translateGuestErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Mark(err, errs.ErrValidation)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return errs.Validation("invalid guest detail: " + strings.Join(msgs, "; "))
}
