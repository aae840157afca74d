package commands

import (
	"context"
	"encoding/json"
	"time"

	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

func enqueueEvent(ctx context.Context, tx shared.Tx, at time.Time, aggregateType string, aggregateID uuid.UUID, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode event payload")
	}
	return tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       body,
		OccurredAt:    at,
	})
}
