package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errs.Validation("Idempotency-Key must be a UUID")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Calculate room costs
// @Description Price a prospective stay without booking it
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RoomCostsRequest true "Rooms and stay dates"
// @Success 200 {object} resdto.Envelope{data=resdto.RoomCostResponse}
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations/room-costs [post]
func (h *ReservationHandler) RoomCosts(c *gin.Context) {
	var req reqdto.RoomCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid date")
		return
	}
	view, err := h.q.CalculateRoomCosts(c.Request.Context(), req.RoomIDs, checkIn, checkOut)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Room costs calculated", resdto.FromRoomCostView(view)))
}

// @Summary Create reservation
// @Description Book rooms for a stay. A repeated Idempotency-Key returns the first result.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.Envelope{data=resdto.ReservationResponse}
// @Success 200 {object} resdto.Envelope{data=resdto.ReservationResponse}
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		httperr.BadRequest(c, err, err.Error())
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid date")
		return
	}
	actor, _ := middleware.GetActor(c)

	result, err := h.cmds.CreateReservation(c.Request.Context(), in, actor, key)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	view, err := h.q.GetByIDSystem(c.Request.Context(), result.ReservationID)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}

	status, msg := http.StatusCreated, "Reservation created"
	if result.IsReplayed {
		status, msg = http.StatusOK, "Reservation already created"
	}
	c.Header("Location", "/api/reservations/"+result.ReservationID.String())
	c.JSON(status, resdto.Success(msg, resdto.FromReservationView(view)))
}

// @Summary Get reservation
// @Description Reservation with rooms, guests and payments (owner or admin)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.Envelope{data=resdto.ReservationResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid reservation id")
		return
	}
	actor, _ := middleware.GetActor(c)
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, httperr.Query)
		return
	}
	c.JSON(http.StatusOK, resdto.Success("Reservation retrieved", resdto.FromReservationView(view)))
}

// @Summary Add guests
// @Description Attach guests to rooms of an active reservation; one bad guest rejects the batch
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AddGuestsRequest true "Guests"
// @Success 201 {object} resdto.Envelope{data=resdto.GuestsAdded}
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/guests [post]
func (h *ReservationHandler) AddGuests(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid reservation id")
		return
	}
	var req reqdto.AddGuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request")
		return
	}
	details, err := req.ToDetails()
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	actor, _ := middleware.GetActor(c)

	result, err := h.cmds.AddGuests(c.Request.Context(), id, details, actor)
	if err != nil {
		httperr.Abort(c, err, httperr.Command)
		return
	}
	c.JSON(http.StatusCreated, resdto.Success("Guests added", resdto.GuestsAdded{
		ReservationID: result.ReservationID,
		Added:         result.Added,
	}))
}

func idempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errInvalidIdempotencyKey
	}
	return &key, nil
}
