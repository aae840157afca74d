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

type RefundHandler struct {
	cmds commands.RefundCommands
	q    queries.CancellationQueries
}

func NewRefundHandler(cmds commands.RefundCommands, q queries.CancellationQueries) *RefundHandler {
	return &RefundHandler{cmds: cmds, q: q}
}

// @Summary Process refund
// @Description Create the pending refund for an approved cancellation request (admin)
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProcessRefundRequest true "Refund"
// @Success 201 {object} resdto.Envelope{data=resdto.RefundResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /refunds [post]
func (h *RefundHandler) Process(c *gin.Context) {
	var req reqdto.ProcessRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	admin, _ := middleware.GetActor(c)

	result, err := h.cmds.ProcessRefund(c.Request.Context(), req.ToInput(), admin)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetRefundByID(c.Request.Context(), result.RefundID)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusCreated, resdto.Success("Refund processed", resdto.FromRefundView(view)))
}

// @Summary Update refund status
// @Description Settle a pending refund; processed completes the cancellation request
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Refund ID"
// @Param request body reqdto.UpdateRefundStatusRequest true "processed or failed"
// @Success 200 {object} resdto.Envelope{data=resdto.RefundResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /refunds/{id}/status [patch]
func (h *RefundHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid refund id")
		return
	}
	var req reqdto.UpdateRefundStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	in := commands.UpdateRefundStatusInput{Status: req.Status}
	if err := h.cmds.UpdateRefundStatus(c.Request.Context(), id, in); err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetRefundByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Refund status updated", resdto.FromRefundView(view)))
}
