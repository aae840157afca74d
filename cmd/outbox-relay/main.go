package main

import (
	"context"
	"log/slog"
	"os"

	"hotel-booking/cmd/bootstrap"
	"hotel-booking/internal/infra/outbox"

	"go.uber.org/fx"
)

func startRelay(lc fx.Lifecycle, relay *outbox.Relay, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("outboxリレーを起動します")
			go func() {
				defer close(done)
				_ = relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			logger.Info("outboxリレーを停止しました")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.RelayModule,
		fx.Invoke(startRelay),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("outboxリレーの起動に失敗しました", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("outboxリレーの停止に失敗しました", "error", err)
	}
}
