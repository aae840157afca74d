package reservation

import (
	"time"

	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrDuplicateRoom         = errs.Validation("room listed more than once")
	ErrReservationNotActive  = errs.DomainRule("reservation is not active")
	ErrRoomNotInReservation  = errs.DomainRule("room does not belong to the reservation")
	ErrRoomAlreadyReleased   = errs.DomainRule("room has already been released")
	ErrReservationNotOwned   = errs.DomainRule("reservation does not belong to the user")
	ErrReservationNotPayable = errs.DomainRule("cannot record a payment for a cancelled reservation")
	ErrRoomUnavailable       = errs.Conflict("one or more rooms are not available for the selected dates")
	ErrReservationNotFound   = errs.NotFound("reservation not found")
	ErrRoomNotFound          = errs.NotFound("one or more rooms were not found")
)

type BookedRoom struct {
	RoomID      uuid.UUID
	RoomNumber  string
	NightlyRate Money
	Status      RoomStatus
}

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	stay      StayPeriod
	rooms     []BookedRoom
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation builds an Active reservation; the nightly rate of each room is captured now.
func NewReservation(userID uuid.UUID, rooms []RoomRate, stay StayPeriod) (*Reservation, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	seen := make(map[uuid.UUID]struct{}, len(rooms))
	booked := make([]BookedRoom, 0, len(rooms))
	for _, r := range rooms {
		if _, dup := seen[r.RoomID]; dup {
			return nil, ErrDuplicateRoom
		}
		seen[r.RoomID] = struct{}{}
		booked = append(booked, BookedRoom{
			RoomID:      r.RoomID,
			RoomNumber:  r.RoomNumber,
			NightlyRate: r.NightlyRate,
			Status:      RoomStatusActive,
		})
	}
	return &Reservation{
		userID: userID,
		stay:   stay,
		rooms:  booked,
		status: StatusActive,
	}, nil
}

func ReconstructReservation(
	id, userID uuid.UUID,
	stay StayPeriod,
	rooms []BookedRoom,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		stay:      stay,
		rooms:     rooms,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) Stay() StayPeriod     { return r.stay }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

func (r *Reservation) Rooms() []BookedRoom {
	out := make([]BookedRoom, len(r.rooms))
	copy(out, r.rooms)
	return out
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) EnsureActive() error {
	if !r.IsActive() {
		return ErrReservationNotActive
	}
	return nil
}

func (r *Reservation) ActiveRoomIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.Status == RoomStatusActive {
			ids = append(ids, room.RoomID)
		}
	}
	return ids
}

func (r *Reservation) findRoom(id uuid.UUID) (BookedRoom, bool) {
	for _, room := range r.rooms {
		if room.RoomID == id {
			return room, true
		}
	}
	return BookedRoom{}, false
}

// ActiveRates returns the captured rates of roomIDs, which must be a non-empty set of this
// reservation's active rooms.
func (r *Reservation) ActiveRates(roomIDs []uuid.UUID) ([]RoomRate, error) {
	if len(roomIDs) == 0 {
		return nil, ErrNoRooms
	}
	seen := make(map[uuid.UUID]struct{}, len(roomIDs))
	rates := make([]RoomRate, 0, len(roomIDs))
	for _, id := range roomIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateRoom
		}
		seen[id] = struct{}{}

		room, ok := r.findRoom(id)
		if !ok {
			return nil, ErrRoomNotInReservation
		}
		if room.Status != RoomStatusActive {
			return nil, ErrRoomAlreadyReleased
		}
		rates = append(rates, RoomRate{RoomID: room.RoomID, RoomNumber: room.RoomNumber, NightlyRate: room.NightlyRate})
	}
	return rates, nil
}

// CoversAllActiveRooms reports whether releasing roomIDs would leave nothing active.
func (r *Reservation) CoversAllActiveRooms(roomIDs []uuid.UUID) bool {
	set := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		set[id] = struct{}{}
	}
	for _, id := range r.ActiveRoomIDs() {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// ReleaseRooms frees roomIDs for rebooking. The reservation becomes Cancelled once no room is left.
func (r *Reservation) ReleaseRooms(roomIDs []uuid.UUID) error {
	if _, err := r.ActiveRates(roomIDs); err != nil {
		return err
	}
	release := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		release[id] = struct{}{}
	}
	for i := range r.rooms {
		if _, ok := release[r.rooms[i].RoomID]; ok {
			r.rooms[i].Status = RoomStatusReleased
		}
	}
	if len(r.ActiveRoomIDs()) == 0 {
		r.status = StatusCancelled
	}
	return nil
}

func (r *Reservation) EnsurePayable() error {
	if r.status == StatusCancelled {
		return ErrReservationNotPayable
	}
	return nil
}
