package cancellation

import (
	"strings"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
)

const maxReasonLength = 500

type Request struct {
	id               uuid.UUID
	reservationID    uuid.UUID
	userID           uuid.UUID
	roomIDs          []uuid.UUID
	reason           *string
	cancellationType Type
	status           Status
	charge           ChargeResult
	requestedOn      time.Time
	reviewedBy       *uuid.UUID
	reviewedOn       *time.Time
}

// NewRequest opens a cancellation for roomIDs. The charge must already have been priced by the PolicyEngine.
func NewRequest(
	res *reservation.Reservation,
	actor user.Actor,
	roomIDs []uuid.UUID,
	reason *string,
	charge ChargeResult,
	now time.Time,
) (*Request, error) {
	if !actor.CanActOn(res.UserID()) {
		return nil, reservation.ErrReservationNotOwned
	}
	if err := res.EnsureActive(); err != nil {
		return nil, err
	}
	if _, err := res.ActiveRates(roomIDs); err != nil {
		return nil, err
	}
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if len(trimmed) > maxReasonLength {
			return nil, ErrReasonTooLong
		}
		if trimmed == "" {
			reason = nil
		} else {
			reason = &trimmed
		}
	}

	t := TypePartial
	if res.CoversAllActiveRooms(roomIDs) {
		t = TypeFull
	}

	ids := make([]uuid.UUID, len(roomIDs))
	copy(ids, roomIDs)
	return &Request{
		reservationID:    res.ID(),
		userID:           res.UserID(),
		roomIDs:          ids,
		reason:           reason,
		cancellationType: t,
		status:           StatusRequested,
		charge:           charge,
		requestedOn:      now,
	}, nil
}

func ReconstructRequest(
	id, reservationID, userID uuid.UUID,
	roomIDs []uuid.UUID,
	reason *string,
	cancellationType Type,
	status Status,
	charge ChargeResult,
	requestedOn time.Time,
	reviewedBy *uuid.UUID,
	reviewedOn *time.Time,
) *Request {
	return &Request{
		id:               id,
		reservationID:    reservationID,
		userID:           userID,
		roomIDs:          roomIDs,
		reason:           reason,
		cancellationType: cancellationType,
		status:           status,
		charge:           charge,
		requestedOn:      requestedOn,
		reviewedBy:       reviewedBy,
		reviewedOn:       reviewedOn,
	}
}

func (r *Request) ID() uuid.UUID            { return r.id }
func (r *Request) ReservationID() uuid.UUID { return r.reservationID }
func (r *Request) UserID() uuid.UUID        { return r.userID }
func (r *Request) RoomIDs() []uuid.UUID     { return r.roomIDs }
func (r *Request) Reason() *string          { return r.reason }
func (r *Request) Type() Type               { return r.cancellationType }
func (r *Request) Status() Status           { return r.status }
func (r *Request) Charge() ChargeResult     { return r.charge }
func (r *Request) RequestedOn() time.Time   { return r.requestedOn }
func (r *Request) ReviewedBy() *uuid.UUID   { return r.reviewedBy }
func (r *Request) ReviewedOn() *time.Time   { return r.reviewedOn }

// Review applies an administrator decision. Only a Requested request can be reviewed.
func (r *Request) Review(adminID uuid.UUID, decision Decision, now time.Time) error {
	next := decision.Status()
	if !CanTransition(r.status, next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.reviewedBy = &adminID
	r.reviewedOn = &now
	return nil
}
