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

type CancellationHandler struct {
	cmds commands.CancellationCommands
	q    queries.CancellationQueries
}

func NewCancellationHandler(cmds commands.CancellationCommands, q queries.CancellationQueries) *CancellationHandler {
	return &CancellationHandler{cmds: cmds, q: q}
}

// @Summary List cancellation policies
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.Envelope{data=[]resdto.PolicyResponse}
// @Router /cancellations/policies [get]
func (h *CancellationHandler) Policies(c *gin.Context) {
	items, err := h.q.ListPolicies(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, httperr.Query)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Cancellation policies retrieved", resdto.FromPolicyViews(items)))
}

// @Summary Calculate cancellation charges
// @Description Price cancelling some rooms of a reservation under the policy in force today
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CancellationChargesRequest true "Reservation and rooms"
// @Success 200 {object} resdto.Envelope{data=resdto.ChargeResponse}
// @Failure 400 {object} httperr.Response
// @Router /cancellations/charges [post]
func (h *CancellationHandler) Charges(c *gin.Context) {
	var req reqdto.CancellationChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.q.CalculateCharges(c.Request.Context(), actor, req.ReservationID, req.RoomIDs)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Cancellation charges calculated", resdto.FromChargeView(view)))
}

// @Summary Request cancellation
// @Description Open a cancellation request for rooms of an active reservation
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCancellationRequest true "Cancellation request"
// @Success 201 {object} resdto.Envelope{data=resdto.CancellationResponse}
// @Failure 400 {object} httperr.Response
// @Router /cancellations [post]
func (h *CancellationHandler) Create(c *gin.Context) {
	var req reqdto.CreateCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	actor, _ := middleware.GetActor(c)

	result, err := h.cmds.CreateCancellationRequest(c.Request.Context(), req.ToInput(), actor)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.CancellationID)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusCreated, resdto.Success("Cancellation request created", resdto.FromCancellationView(view)))
}

// @Summary List cancellation requests
// @Description Admin listing, newest first
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Param status query string false "requested, approved, rejected, refund_pending or refund_processed"
// @Param dateFrom query string false "YYYY-MM-DD"
// @Param dateTo query string false "YYYY-MM-DD"
// @Success 200 {object} resdto.Envelope{data=[]resdto.CancellationResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cancellations [get]
func (h *CancellationHandler) List(c *gin.Context) {
	var query reqdto.ListCancellationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	filters, err := query.ToFilters()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid date")
		return
	}
	items, err := h.q.ListAll(c.Request.Context(), filters)
	if err != nil {
		httperr.Abort(c, err, httperr.Query)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Cancellation requests retrieved", resdto.FromCancellationViews(items)))
}

// @Summary Review cancellation request
// @Description Approve (releases the rooms) or reject a pending request
// @Tags cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cancellation request ID"
// @Param request body reqdto.ReviewCancellationRequest true "approved or rejected"
// @Success 200 {object} resdto.Envelope{data=resdto.CancellationResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /cancellations/{id}/review [post]
func (h *CancellationHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid cancellation request id")
		return
	}
	var req reqdto.ReviewCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	admin, _ := middleware.GetActor(c)

	in := commands.ReviewCancellationInput{Decision: req.ApprovalStatus}
	if err := h.cmds.ReviewCancellationRequest(c.Request.Context(), id, in, admin); err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Cancellation request reviewed", resdto.FromCancellationView(view)))
}

// @Summary Cancellations awaiting refund
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.Envelope{data=[]resdto.CancellationForRefundResponse}
// @Failure 404 {object} httperr.Response
// @Router /cancellations/refunds/pending [get]
func (h *CancellationHandler) PendingRefunds(c *gin.Context) {
	items, err := h.q.ListForRefund(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, httperr.Query)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Cancellations awaiting refund retrieved", resdto.FromCancellationsForRefund(items)))
}
