package repository

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/google/uuid"
)

const (
	tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, status, request_hash, expires_at)
VALUES ($1, $2, $3, 'processing', $4, $5)
ON CONFLICT (key, user_id) DO NOTHING`

	claimExpiredIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'processing', request_hash = $3, result_id = NULL, expires_at = $5, updated_at = now()
WHERE key = $1 AND user_id = $2 AND expires_at <= $4`

	updateIdempotencyKeyCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', result_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2`

	deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys WHERE expires_at <= $1`
)

type IdempotencyRepository struct {
	dbtx db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{dbtx: dbtx}
}

// TryInsert blocks on a concurrent uncommitted insert of the same key until that transaction ends.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, tryInsertIdempotencyKeySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (int64, error) {
	tag, err := r.dbtx.Exec(ctx, claimExpiredIdempotencyKeySQL, key, userID, requestHash, now, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultID uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, updateIdempotencyKeyCompletedSQL, key, userID, resultID)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	return nil
}

// DeleteExpired drops keys whose replay window closed at or before now.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.dbtx.Exec(ctx, deleteExpiredIdempotencyKeysSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
