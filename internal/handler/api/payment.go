package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.ReservationQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.ReservationQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Record payment
// @Description Record a pending payment against a reservation that is not cancelled
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.Envelope{data=resdto.PaymentResponse}
// @Failure 400 {object} httperr.Response
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		httperr.BadRequest(c, err, err.Error())
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	actor, _ := middleware.GetActor(c)

	result, err := h.cmds.RecordPayment(c.Request.Context(), req.ToInput(), actor, key)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetPaymentByID(c.Request.Context(), result.PaymentID)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}

	status, msg := http.StatusCreated, "Payment recorded"
	if result.IsReplayed {
		status, msg = http.StatusOK, "Payment already recorded"
	}
	c.JSON(status, resdto.Success(msg, resdto.FromPaymentView(view)))
}

// @Summary Update payment status
// @Description Settle a pending payment as completed or failed (admin)
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.UpdatePaymentStatusRequest true "New status"
// @Success 200 {object} resdto.Envelope{data=resdto.PaymentResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid payment id")
		return
	}
	var req reqdto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	if err := h.cmds.UpdatePaymentStatus(c.Request.Context(), id, req.ToInput()); err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Payment status updated", resdto.FromPaymentView(view)))
}
