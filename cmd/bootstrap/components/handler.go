package components

import (
	"hotel-booking/internal/handler"
	"hotel-booking/internal/handler/api"
	"hotel-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewCancellationHandler,
		api.NewRefundHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, p *api.PaymentHandler, c *api.CancellationHandler, rf *api.RefundHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Payment: p, Cancellation: c, Refund: rf}
		},
	),
	fx.Invoke(handler.NewRouter),
)
