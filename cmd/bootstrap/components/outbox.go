package components

import (
	"context"

	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/outbox"
	"hotel-booking/internal/infra/repository"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		clock.NewRealClock,
		outbox.NewPostgresRunner,
		NewKafkaPublisher,
		func(dbtx db.DBTX) outbox.KeyJanitor {
			return repository.NewIdempotencyRepository(dbtx)
		},
		func(runner outbox.Runner, pub *outbox.KafkaPublisher, janitor outbox.KeyJanitor, clk clock.Clock, cfg config.Config) *outbox.Relay {
			return outbox.NewRelay(runner, pub, janitor, clk, cfg.Outbox)
		},
	),
)

func NewKafkaPublisher(lc fx.Lifecycle, cfg config.Config) (*outbox.KafkaPublisher, error) {
	pub, err := outbox.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
