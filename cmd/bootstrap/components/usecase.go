package components

import (
	"hotel-booking/internal/domain/cancellation"
	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCostCalculator,
	cancellation.NewPolicyEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, calc reservation.CostCalculator, clk clock.Clock, cfg config.Config) commands.ReservationCommands {
			return commands.NewReservationUseCase(uow, calc, clk, cfg.Booking.IdempotencyTTL)
		},
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.PaymentCommands {
			return commands.NewPaymentUseCase(uow, clk, cfg.Booking.IdempotencyTTL)
		},
		commands.NewCancellationUseCase,
		commands.NewRefundUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewCancellationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCostCalculator(cfg config.Config) (reservation.CostCalculator, error) {
	taxRate, err := reservation.NewPercentage(cfg.Booking.TaxRateBps)
	if err != nil {
		return nil, err
	}
	return reservation.NewDefaultCostCalculator(taxRate), nil
}
