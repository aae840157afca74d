package shared

import (
	"context"
	"time"

	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Guests() GuestRepository
	Payments() PaymentRepository
	Cancellations() CancellationRepository
	Refunds() RefundRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

type CommandReads interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ReservationByIDForUpdate locks the reservation row until the transaction ends.
	ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	RoomRatesByIDs(ctx context.Context, ids []uuid.UUID) ([]reservation.RoomRate, error)
	CoveringPolicies(ctx context.Context, at time.Time) ([]cancellation.Policy, error)
	CancellationByID(ctx context.Context, id uuid.UUID) (*cancellation.Request, error)
	OpenCancellationRoomIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error)
	RefundByID(ctx context.Context, id uuid.UUID) (*cancellation.Refund, error)
	RefundMethodExists(ctx context.Context, id int) (bool, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

// Status updates are compare-and-swap: a row whose current status is not `expected`
// is left untouched and the repository returns a PRECONDITION_FAILED error.

type ReservationRepository interface {
	// Create fails with a CONFLICT error when any room is already booked for an overlapping stay.
	Create(ctx context.Context, res *reservation.Reservation, costs reservation.RoomCostBreakdown) (uuid.UUID, error)
	ReleaseRooms(ctx context.Context, reservationID uuid.UUID, roomIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next reservation.Status) error
}

type GuestRepository interface {
	// InsertBatch fails with FOREIGN_KEY_VIOLATED when a guest's room is not part of its reservation.
	InsertBatch(ctx context.Context, guests []*reservation.Guest) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next payment.Status, failureReason *string) error
}

type CancellationRepository interface {
	Create(ctx context.Context, req *cancellation.Request) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next cancellation.Status, reviewedBy *uuid.UUID, reviewedOn *time.Time) error
}

type RefundRepository interface {
	// Create fails with DUPLICATE_KEY when the cancellation request already has a refund.
	Create(ctx context.Context, r *cancellation.Refund) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next cancellation.RefundStatus) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the user.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	// ClaimExpired takes over a key whose previous use expired before now.
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (int64, error)
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultID uuid.UUID) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
}
