//go:build unit

// Package memledger is an in-memory Ledger for use-case tests. Transactions are
// serialized by one mutex and applied to a private copy of the state, so a failed
// transaction leaves nothing behind.
package memledger

import (
	"context"
	"sync"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Room struct {
	ID          uuid.UUID
	Number      string
	Type        string
	NightlyRate int64
}

type bookedRoom struct {
	roomID uuid.UUID
	number string
	rate   int64
	status string
}

type reservationRec struct {
	id            uuid.UUID
	userID        uuid.UUID
	checkIn       time.Time
	checkOut      time.Time
	status        string
	subtotalCents int64
	taxRateBps    int64
	taxCents      int64
	totalCents    int64
	rooms         []bookedRoom
	createdAt     time.Time
	updatedAt     time.Time
}

type guestRec struct {
	id            uuid.UUID
	reservationID uuid.UUID
	roomID        uuid.UUID
	firstName     string
	lastName      string
	email         string
	phone         string
	ageGroup      string
	address       string
	countryID     int
	stateID       int
}

type paymentRec struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amountCents   int64
	method        string
	status        string
	failureReason *string
	createdAt     time.Time
	updatedAt     time.Time
}

type cancellationRec struct {
	id            uuid.UUID
	reservationID uuid.UUID
	userID        uuid.UUID
	roomIDs       []uuid.UUID
	reason        *string
	kind          string
	status        string
	charge        cancellation.ChargeResult
	requestedOn   time.Time
	reviewedBy    *uuid.UUID
	reviewedOn    *time.Time
}

type refundRec struct {
	id             uuid.UUID
	cancellationID uuid.UUID
	methodID       int
	amountCents    int64
	status         string
	processedBy    uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type state struct {
	rooms         map[uuid.UUID]Room
	reservations  map[uuid.UUID]*reservationRec
	guests        []guestRec
	payments      map[uuid.UUID]*paymentRec
	policies      []cancellation.Policy
	cancellations map[uuid.UUID]*cancellationRec
	refunds       map[uuid.UUID]*refundRec
	refundMethods map[int]string
	idempotency   map[idemKey]shared.IdempotencyRecord
	outbox        []shared.OutboxEvent
}

func newState() *state {
	return &state{
		rooms:         map[uuid.UUID]Room{},
		reservations:  map[uuid.UUID]*reservationRec{},
		payments:      map[uuid.UUID]*paymentRec{},
		cancellations: map[uuid.UUID]*cancellationRec{},
		refunds:       map[uuid.UUID]*refundRec{},
		refundMethods: map[int]string{1: "original_payment", 2: "bank_transfer", 3: "store_credit"},
		idempotency:   map[idemKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.reservations {
		r := *v
		r.rooms = append([]bookedRoom(nil), v.rooms...)
		c.reservations[k] = &r
	}
	c.guests = append([]guestRec(nil), s.guests...)
	for k, v := range s.payments {
		p := *v
		c.payments[k] = &p
	}
	c.policies = append([]cancellation.Policy(nil), s.policies...)
	for k, v := range s.cancellations {
		r := *v
		r.roomIDs = append([]uuid.UUID(nil), v.roomIDs...)
		c.cancellations[k] = &r
	}
	for k, v := range s.refunds {
		r := *v
		c.refunds[k] = &r
	}
	c.refundMethods = map[int]string{}
	for k, v := range s.refundMethods {
		c.refundMethods[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	c.outbox = append([]shared.OutboxEvent(nil), s.outbox...)
	return c
}

type Ledger struct {
	mu        sync.Mutex
	state     *state
	clock     clock.Clock
	outboxErr error
}

var _ shared.UnitOfWork = (*Ledger)(nil)

func New(clk clock.Clock) *Ledger {
	return &Ledger{state: newState(), clock: clk}
}

func (l *Ledger) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	working := l.state.clone()
	if err := fn(ctx, &memTx{s: working, l: l}); err != nil {
		return err
	}
	l.state = working
	return nil
}

func (l *Ledger) CommandReads() shared.CommandReads {
	return lockedReads{l: l}
}

// Seeding and inspection helpers

func (l *Ledger) AddRoom(number string, nightlyRateCents int64) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uuid.New()
	l.state.rooms[id] = Room{ID: id, Number: number, Type: "standard", NightlyRate: nightlyRateCents}
	return id
}

func (l *Ledger) AddPolicy(p cancellation.Policy) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	l.state.policies = append(l.state.policies, p)
	return p.ID
}

// FailOutbox makes every following Enqueue fail with err (nil restores normal behavior).
func (l *Ledger) FailOutbox(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outboxErr = err
}

func (l *Ledger) Events() []shared.OutboxEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]shared.OutboxEvent(nil), l.state.outbox...)
}

func (l *Ledger) EventTypes() []string {
	events := l.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType
	}
	return out
}

func (l *Ledger) ReservationCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state.reservations)
}

func (l *Ledger) GuestCount(reservationID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, g := range l.state.guests {
		if g.reservationID == reservationID {
			n++
		}
	}
	return n
}

func (l *Ledger) RefundCount(cancellationID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.state.refunds {
		if r.cancellationID == cancellationID {
			n++
		}
	}
	return n
}

func (l *Ledger) PaymentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state.payments)
}

// RoomStatus returns the booked status of roomID within reservationID, or "" when it is not booked there.
func (l *Ledger) RoomStatus(reservationID, roomID uuid.UUID) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.state.reservations[reservationID]
	if !ok {
		return ""
	}
	for _, r := range res.rooms {
		if r.roomID == roomID {
			return r.status
		}
	}
	return ""
}

type memTx struct {
	s *state
	l *Ledger
}

func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t} }
func (t *memTx) Guests() shared.GuestRepository               { return guestRepo{t} }
func (t *memTx) Payments() shared.PaymentRepository           { return paymentRepo{t} }
func (t *memTx) Cancellations() shared.CancellationRepository { return cancellationRepo{t} }
func (t *memTx) Refunds() shared.RefundRepository             { return refundRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository              { return outboxRepo{t} }
func (t *memTx) Reads() shared.CommandReads                   { return stateReads{s: t.s} }
