package components

import (
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/readstore"
	"hotel-booking/internal/infra/uow"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation (header, rooms, guests and payments in one snapshot)
		fx.Annotate(
			uow.NewReservationViews,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Cancellation and refund
		fx.Annotate(
			readstore.NewCancellationReadStore,
			fx.As(new(queries.CancellationReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
		func(u *uow.PostgresUoW) shared.UnitOfWork { return u },
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
