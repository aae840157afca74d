package repository

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/usecase/shared"
)

const (
	insertOutboxEventSQL = `
INSERT INTO outbox_events (aggregate_type, aggregate_id, event_type, payload, occurred_at, next_attempt_at)
VALUES ($1, $2, $3, $4, $5, $5)`

	claimDueOutboxEventsSQL = `
SELECT id, aggregate_type, aggregate_id, event_type, payload, occurred_at, attempts
FROM outbox_events
WHERE status = 'pending' AND next_attempt_at <= $1
ORDER BY id
LIMIT $2
FOR UPDATE SKIP LOCKED`

	markOutboxEventSentSQL = `
UPDATE outbox_events SET status = 'sent', sent_at = $2, attempts = attempts + 1 WHERE id = $1`

	rescheduleOutboxEventSQL = `
UPDATE outbox_events
SET attempts = attempts + 1,
    last_error = $2,
    next_attempt_at = $3,
    status = CASE WHEN attempts + 1 >= $4 THEN 'failed' ELSE 'pending' END
WHERE id = $1`
)

type OutboxRepository struct {
	dbtx db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{dbtx: dbtx}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, event shared.OutboxEvent) error {
	_, err := r.dbtx.Exec(ctx, insertOutboxEventSQL,
		event.AggregateType, event.AggregateID, event.EventType, event.Payload, event.OccurredAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

type PendingOutboxEvent struct {
	ID       int64
	Attempts int
	shared.OutboxEvent
}

// ClaimDue locks up to limit due events; concurrent relays skip each other's rows.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]PendingOutboxEvent, error) {
	rows, err := r.dbtx.Query(ctx, claimDueOutboxEventsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	defer rows.Close()

	var events []PendingOutboxEvent
	for rows.Next() {
		var e PendingOutboxEvent
		var attempts int32
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.OccurredAt, &attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		e.Attempts = int(attempts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	if _, err := r.dbtx.Exec(ctx, markOutboxEventSentSQL, id, sentAt); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}

// Reschedule records a failed publish; the event is parked as failed once maxAttempts is reached.
func (r *OutboxRepository) Reschedule(ctx context.Context, id int64, lastErr string, nextAttemptAt time.Time, maxAttempts int) error {
	if _, err := r.dbtx.Exec(ctx, rescheduleOutboxEventSQL, id, lastErr, nextAttemptAt, maxAttempts); err != nil {
		return infra.WrapRepoErr("failed to reschedule outbox event", err)
	}
	return nil
}
