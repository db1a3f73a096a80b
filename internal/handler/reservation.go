package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/campus-canteen-reservation/internal/metrics"
	"github.com/iliyamo/campus-canteen-reservation/internal/model"
	"github.com/iliyamo/campus-canteen-reservation/internal/queue"
	"github.com/iliyamo/campus-canteen-reservation/internal/service"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

// ReservationHandler serves reservation creation, cancellation and listing.
type ReservationHandler struct {
	Store     *store.Store
	Publisher *service.Publisher
	Logger    zerolog.Logger
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(s *store.Store, pub *service.Publisher, logger zerolog.Logger) *ReservationHandler {
	if s == nil || pub == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: s, Publisher: pub, Logger: logger}
}

// Create handles POST /reservations. The body carries the student's own id;
// there is no separate identity check on this endpoint, matching the
// consumer contract this service inherited.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		CanteenID int64           `json:"canteenId"`
		StudentID int64           `json:"studentId"`
		Date      model.Date      `json:"date"`
		Time      model.ClockTime `json:"time"`
		Duration  int             `json:"duration"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid request body"})
	}
	if body.CanteenID <= 0 || body.StudentID <= 0 {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "canteenId and studentId are required"})
	}

	r, err := h.Store.CreateReservation(body.CanteenID, body.StudentID, body.Date, body.Time, body.Duration)
	if err != nil {
		metrics.IncReservationRejected(rejectionReason(err))
		switch {
		case errors.Is(err, store.ErrStudentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		case errors.Is(err, store.ErrCanteenNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "canteen not found"})
		case errors.Is(err, store.ErrPastDate):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "reservation date is in the past"})
		case errors.Is(err, store.ErrOverlap):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "overlapping reservation"})
		case errors.Is(err, store.ErrOutsideWorkingHours):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "outside working hours"})
		case errors.Is(err, store.ErrCanteenFull):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "canteen is full"})
		case errors.Is(err, store.ErrInvalidDuration):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "duration must be 30 or 60"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
		}
	}

	metrics.IncReservationCreated()
	h.publish(c, queue.EventReservationConfirmed, r)
	return c.JSON(http.StatusCreated, r)
}

// Cancel handles DELETE /reservations/:id. Only the owning student or an
// admin may cancel; an already-cancelled or unknown reservation is a 404
// either way.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	reqID, ok := requesterID(c)
	if !ok {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "studentId header is required"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	r, err := h.Store.CancelReservation(id, reqID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, store.ErrPermissionDenied):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "not allowed to cancel this reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel reservation"})
		}
	}

	metrics.IncReservationCancelled()
	h.publish(c, queue.EventReservationCancelled, r)
	return c.JSON(http.StatusOK, r)
}

// List handles GET /reservations?studentId=N and returns the student's full
// reservation history, cancelled entries included.
func (h *ReservationHandler) List(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("studentId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "studentId query parameter is required"})
	}
	list, err := h.Store.ListReservationsByStudent(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
	}
	return c.JSON(http.StatusOK, list)
}

// publish emits a reservation event for the direct create/cancel paths.
// The canteen is looked up leniently; a name is decoration on the event,
// not a correctness requirement.
func (h *ReservationHandler) publish(c echo.Context, eventType string, r model.Reservation) {
	canteenName := ""
	if ct, err := h.Store.GetCanteen(r.CanteenID); err == nil {
		canteenName = ct.Name
	}
	publishReservationEvent(c, h.Publisher, h.Logger, eventType, r, canteenName)
}
