package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	Status      string
	RequestHash string
	ResultID    *uuid.UUID
	ExpiresAt   time.Time
}

// OutboxEvent is written in the same transaction as the state change it describes
// and later relayed to the message broker.
type OutboxEvent struct {
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
}

const (
	AggregateReservation  = "reservation"
	AggregatePayment      = "payment"
	AggregateCancellation = "cancellation"
	AggregateRefund       = "refund"
)

const (
	EventReservationCreated    = "reservation.created"
	EventGuestsAdded           = "reservation.guests_added"
	EventPaymentRecorded       = "payment.recorded"
	EventPaymentStatusChanged  = "payment.status_changed"
	EventCancellationRequested = "cancellation.requested"
	EventCancellationReviewed  = "cancellation.reviewed"
	EventRefundCreated         = "refund.created"
	EventRefundStatusChanged   = "refund.status_changed"
)
