package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/domain/user"
	reqdto "salon-booking/internal/handler/dto/request"
	resdto "salon-booking/internal/handler/dto/response"
	"salon-booking/internal/handler/httperr"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

type BookingHandler struct {
	cmds      commands.BookingCommands
	creator   commands.IdempotentBookingCreator
	q         queries.BookingQueries
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewBookingHandler(
	cmds commands.BookingCommands,
	creator commands.IdempotentBookingCreator,
	q queries.BookingQueries,
	publisher shared.EventPublisher,
	clk clock.Clock,
) *BookingHandler {
	return &BookingHandler{
		cmds:      cmds,
		creator:   creator,
		q:         q,
		publisher: publisher,
		clock:     clk,
	}
}

// @Summary Create booking
// @Description Book a time slot on a resource. The new booking starts as PENDING.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the original response when the same request is retried"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if !actor.CanAccess(req.Subject(actor)) {
		httperr.AbortWithError(c, http.StatusForbidden, queries.ErrBookingAccess, "Cannot book for another customer", nil)
		return
	}
	key := c.GetHeader(HeaderIdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Idempotency-Key is too long", nil)
		return
	}

	params, err := req.ToParams(actor)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}

	result, err := h.creator.Create(c.Request.Context(), actor.ID, key, params)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		c.Header(HeaderReplayed, "true")
		status = http.StatusOK
	} else if result.Created != nil {
		h.publish(c, shared.EventBookingCreated, result.Created)
	}
	h.respondView(c, status, result.Booking)
}

// @Summary Get booking
// @Description Customers may only read their own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// @Summary List bookings
// @Description Newest first, keyset-paginated. Customers only see their own bookings.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, CONFIRMED, COMPLETED, CANCELLED or NO_SHOW"
// @Param resourceId query string false "Resource (staff) ID"
// @Param customerId query string false "Customer ID"
// @Param serviceId query string false "Service ID"
// @Param dateFrom query string false "YYYY-MM-DD"
// @Param dateTo query string false "YYYY-MM-DD"
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, next, err := h.q.List(c.Request.Context(), actor, filter, query.Cursor(), query.PageSize())
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	res, err := resdto.FromBookingList(views, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render bookings", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.runTransition(c, shared.EventBookingConfirmed, h.cmds.ConfirmBooking)
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.runTransition(c, shared.EventBookingCompleted, h.cmds.CompleteBooking)
}

// @Summary Mark booking as no-show
// @Description Allowed only after the booked range has ended
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.runTransition(c, shared.EventBookingNoShow, h.cmds.MarkNoShow)
}

// @Summary Cancel booking
// @Description Frees the slot. Customers may cancel their own bookings.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.runTransition(c, shared.EventBookingCancelled, h.cmds.CancelBooking)
}

// @Summary Reschedule booking
// @Description Moves an active booking to a new slot on the same resource
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New slot"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/schedule [put]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	tr, err := req.ToRange()
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	if !h.authorize(c, actor, id) {
		return
	}

	b, err := h.cmds.RescheduleBooking(c.Request.Context(), id, tr)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.publish(c, shared.EventBookingRescheduled, b)
	h.respondView(c, http.StatusOK, queries.BookingViewFromDomain(b))
}

// @Summary Update booking notes
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateNotesRequest true "Notes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/notes [patch]
func (h *BookingHandler) UpdateNotes(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if !h.authorize(c, actor, id) {
		return
	}

	b, err := h.cmds.UpdateNotes(c.Request.Context(), id, *req.Notes)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, queries.BookingViewFromDomain(b))
}

type transitionFunc func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

func (h *BookingHandler) runTransition(c *gin.Context, ev shared.EventType, run transitionFunc) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}
	if !h.authorize(c, actor, id) {
		return
	}

	b, err := run(c.Request.Context(), id)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.publish(c, ev, b)
	h.respondView(c, http.StatusOK, queries.BookingViewFromDomain(b))
}

// authorize lets staff through and checks ownership for everyone else.
func (h *BookingHandler) authorize(c *gin.Context, actor user.Actor, id uuid.UUID) bool {
	if actor.IsStaff() {
		return true
	}
	if _, err := h.q.GetByID(c.Request.Context(), actor, id); err != nil {
		abortWithBookingError(c, err)
		return false
	}
	return true
}

func (h *BookingHandler) actorAndID(c *gin.Context) (user.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return user.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return user.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

// publish never fails the request; the write has already committed.
func (h *BookingHandler) publish(c *gin.Context, t shared.EventType, b *booking.Booking) {
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.publisher.Publish(ctx, shared.NewBookingEvent(t, b, h.clock.Now())); err != nil {
		slog.Warn("failed to publish booking event",
			"type", string(t),
			"booking_id", b.ID().String(),
			"request_id", middleware.GetRequestID(c),
			"error", err.Error(),
		)
	}
}

func (h *BookingHandler) respondView(c *gin.Context, status int, v *queries.BookingView) {
	res, err := resdto.FromBookingView(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	c.JSON(status, res)
}

var badRequestErrors = []error{
	booking.ErrInvalidTimeRange,
	booking.ErrInvalidTimeOfDay,
	booking.ErrInvalidDate,
	booking.ErrNegativePrice,
	booking.ErrNotesTooLong,
	booking.ErrInvalidStatus,
	queries.ErrInvalidCursor,
	queries.ErrInvalidFilter,
}

func abortWithBookingError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errs.Is(err, target) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, target.Error(), nil)
			return
		}
	}

	var conflict *booking.ConflictError
	var transition *booking.TransitionError
	switch {
	case errs.As(err, &conflict):
		var detail any
		if conflict.ConflictingID != uuid.Nil {
			detail = gin.H{"conflictingBookingId": conflict.ConflictingID.String()}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is already booked", detail)
	case errs.As(err, &transition):
		detail := gin.H{"from": transition.From.String(), "to": transition.To.String()}
		msg := "Invalid status transition"
		if transition.Reason != nil {
			msg = transition.Reason.Error()
		}
		httperr.AbortWithError(c, http.StatusConflict, err, msg, detail)
	case errs.Is(err, commands.ErrBookingNotFound), errs.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, queries.ErrBookingAccess):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access to this booking is denied", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "A request with this Idempotency-Key is still in progress", nil)
	case errs.Is(err, commands.ErrIdempotencyKeyMismatch):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency-Key was used with a different request", nil)
	case errors.Is(err, context.DeadlineExceeded):
		httperr.AbortWithError(c, http.StatusGatewayTimeout, err, "Request timed out", nil)
	case errors.Is(err, context.Canceled):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Request cancelled", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
