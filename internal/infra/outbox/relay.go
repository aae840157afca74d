package outbox

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/repository"
	"hotel-booking/internal/infra/uow"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
)

const (
	baseBackoff = time.Second
	maxBackoff  = 5 * time.Minute
)

// Store is the outbox table as seen from inside one relay transaction.
type Store interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]repository.PendingOutboxEvent, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	Reschedule(ctx context.Context, id int64, lastErr string, nextAttemptAt time.Time, maxAttempts int) error
}

// KeyJanitor reclaims idempotency keys whose replay window has closed.
type KeyJanitor interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Runner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

type postgresRunner struct {
	uow *uow.PostgresUoW
}

func NewPostgresRunner(u *uow.PostgresUoW) Runner {
	return &postgresRunner{uow: u}
}

func (r *postgresRunner) InTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return fn(ctx, repository.NewOutboxRepository(dbtx))
	})
}

type Relay struct {
	runner    Runner
	publisher Publisher
	janitor   KeyJanitor
	clock     clock.Clock
	cfg       config.OutboxConfig
}

func NewRelay(runner Runner, publisher Publisher, janitor KeyJanitor, clk clock.Clock, cfg config.OutboxConfig) *Relay {
	return &Relay{runner: runner, publisher: publisher, janitor: janitor, clock: clk, cfg: cfg}
}

// RunOnce claims one batch of due events and publishes them in id order. A failed publish
// reschedules that event only; the rest of the batch still goes out.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.runner.InTx(ctx, func(ctx context.Context, store Store) error {
		now := r.clock.Now()
		events, err := store.ClaimDue(ctx, now, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, e := range events {
			if perr := r.publisher.Publish(ctx, e); perr != nil {
				next := now.Add(Backoff(e.Attempts))
				slog.Warn("outbox publish failed",
					"outbox_id", e.ID,
					"event_type", e.EventType,
					"attempt", e.Attempts+1,
					"next_attempt_at", next,
					"error", perr.Error())
				if err := store.Reschedule(ctx, e.ID, perr.Error(), next, r.cfg.MaxAttempts); err != nil {
					return err
				}
				continue
			}
			if err := store.MarkSent(ctx, e.ID, r.clock.Now()); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	return sent, err
}

// SweepExpiredKeys deletes idempotency keys that expired at or before the current time.
func (r *Relay) SweepExpiredKeys(ctx context.Context) (int64, error) {
	return r.janitor.DeleteExpired(ctx, r.clock.Now())
}

// Run polls until ctx is cancelled. Expired idempotency keys are swept on their own interval.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	var sweep <-chan time.Time
	if r.janitor != nil && r.cfg.KeySweepInterval > 0 {
		sweepTicker := time.NewTicker(r.cfg.KeySweepInterval)
		defer sweepTicker.Stop()
		sweep = sweepTicker.C
	}

	r.publishBatch(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.publishBatch(ctx)
		case <-sweep:
			r.sweep(ctx)
		}
	}
}

func (r *Relay) publishBatch(ctx context.Context) {
	sent, err := r.RunOnce(ctx)
	switch {
	case err != nil && ctx.Err() == nil:
		slog.Error("outbox relay batch failed", "error", err.Error())
	case sent > 0:
		slog.Info("outbox events published", "count", sent)
	}
}

func (r *Relay) sweep(ctx context.Context) {
	n, err := r.SweepExpiredKeys(ctx)
	switch {
	case err != nil && ctx.Err() == nil:
		slog.Error("idempotency key sweep failed", "error", err.Error())
	case n > 0:
		slog.Info("expired idempotency keys deleted", "count", n)
	}
}

// Backoff doubles per attempt from one second, capped at five minutes.
func Backoff(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts >= 9 {
		return maxBackoff
	}
	d := baseBackoff << attempts
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
