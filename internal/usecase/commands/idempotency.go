package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyKeyReused  = errs.Conflict("idempotency key was already used for a different request")
	ErrIdempotencyInProgress = errs.Conflict("a request with this idempotency key is still in progress")
)

const (
	endpointCreateReservation = "POST /api/reservations"
	endpointRecordPayment     = "POST /api/payments"
)

type idempotencyGuard struct {
	clock clock.Clock
	ttl   time.Duration
}

// begin claims key for the user inside tx. A non-nil ID means the same request
// already completed and its result should be replayed.
func (g idempotencyGuard) begin(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, endpoint string, req any) (*uuid.UUID, error) {
	hash, err := requestHash(req)
	if err != nil {
		return nil, err
	}
	now := g.clock.Now()
	expiresAt := now.Add(g.ttl)

	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, endpoint, hash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if !existing.ExpiresAt.After(now) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, key, userID, hash, now, expiresAt)
		if err != nil {
			return nil, err
		}
		if claimed == 1 {
			return nil, nil
		}
		return nil, ErrIdempotencyInProgress
	}

	if existing.Endpoint != endpoint || existing.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}
	if existing.Status == shared.IdempotencyStatusCompleted && existing.ResultID != nil {
		return existing.ResultID, nil
	}
	return nil, ErrIdempotencyInProgress
}

func (g idempotencyGuard) complete(ctx context.Context, tx shared.Tx, key, userID, resultID uuid.UUID) error {
	return tx.Idempotency().UpdateStatusCompleted(ctx, key, userID, resultID)
}

func requestHash(req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash request")
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
