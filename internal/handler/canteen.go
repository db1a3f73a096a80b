package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/campus-canteen-reservation/internal/metrics"
	"github.com/iliyamo/campus-canteen-reservation/internal/model"
	"github.com/iliyamo/campus-canteen-reservation/internal/queue"
	"github.com/iliyamo/campus-canteen-reservation/internal/service"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

// CanteenHandler serves the canteen directory: admin CRUD plus the public
// browse and capacity status endpoints. It carries the event publisher
// because deleting a canteen cancels reservations, and those cancellations
// are counted and published like any other.
type CanteenHandler struct {
	Store     *store.Store
	Publisher *service.Publisher
	Logger    zerolog.Logger
}

// NewCanteenHandler constructs a CanteenHandler.
func NewCanteenHandler(s *store.Store, pub *service.Publisher, logger zerolog.Logger) *CanteenHandler {
	if s == nil || pub == nil {
		panic("nil dependency passed to NewCanteenHandler")
	}
	return &CanteenHandler{Store: s, Publisher: pub, Logger: logger}
}

// validMeals checks the boundary-level sanity of a working-hours list. Only
// shape is validated here; whether windows overlap each other is the
// admin's business.
func validMeals(meals []model.Meal) bool {
	for _, m := range meals {
		if strings.TrimSpace(m.Name) == "" || m.From >= m.To {
			return false
		}
	}
	return true
}

// Create handles POST /canteens. Requires an admin identity in the
// studentId header.
func (h *CanteenHandler) Create(c echo.Context) error {
	reqID, ok := requesterID(c)
	if !ok {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "studentId header is required"})
	}
	var body struct {
		Name         string       `json:"name"`
		Location     string       `json:"location"`
		Capacity     int          `json:"capacity"`
		WorkingHours []model.Meal `json:"workingHours"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Location = strings.TrimSpace(body.Location)
	if body.Name == "" || body.Location == "" {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "name and location are required"})
	}
	if body.Capacity <= 0 {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "capacity must be positive"})
	}
	if !validMeals(body.WorkingHours) {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid working hours"})
	}

	created, err := h.Store.CreateCanteen(model.Canteen{
		Name:         body.Name,
		Location:     body.Location,
		Capacity:     body.Capacity,
		WorkingHours: body.WorkingHours,
	}, reqID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrStudentNotFound), errors.Is(err, store.ErrPermissionDenied):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "admin privileges required"})
		case errors.Is(err, store.ErrDuplicateName):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "canteen name already exists"})
		case errors.Is(err, store.ErrDuplicateLocation):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "canteen location already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create canteen"})
		}
	}
	metrics.IncCanteenMutation("create")
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /canteens.
func (h *CanteenHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.ListCanteens())
}

// Get handles GET /canteens/:id.
func (h *CanteenHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ct, err := h.Store.GetCanteen(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "canteen not found"})
	}
	return c.JSON(http.StatusOK, ct)
}

// Update handles PUT /canteens/:id. The body is a sparse patch: only the
// fields present in the JSON overwrite the stored canteen.
func (h *CanteenHandler) Update(c echo.Context) error {
	reqID, ok := requesterID(c)
	if !ok {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "studentId header is required"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var patch model.CanteenPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid request body"})
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "name must not be empty"})
	}
	if patch.Location != nil && strings.TrimSpace(*patch.Location) == "" {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "location must not be empty"})
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "capacity must be positive"})
	}
	if patch.WorkingHours != nil && !validMeals(*patch.WorkingHours) {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid working hours"})
	}

	updated, err := h.Store.UpdateCanteen(id, patch, reqID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCanteenNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "canteen not found"})
		case errors.Is(err, store.ErrStudentNotFound), errors.Is(err, store.ErrPermissionDenied):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "admin privileges required"})
		case errors.Is(err, store.ErrDuplicateName):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "canteen name already exists"})
		case errors.Is(err, store.ErrDuplicateLocation):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "canteen location already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update canteen"})
		}
	}
	metrics.IncCanteenMutation("update")
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /canteens/:id. Deleting a canteen cancels all of
// its active reservations in the same operation; each cascaded cancellation
// is counted and published just like a direct one.
func (h *CanteenHandler) Delete(c echo.Context) error {
	reqID, ok := requesterID(c)
	if !ok {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "studentId header is required"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	// The name is gone from the store once the delete lands, so grab it up
	// front for the event payloads.
	canteenName := ""
	if ct, err := h.Store.GetCanteen(id); err == nil {
		canteenName = ct.Name
	}

	cancelled, err := h.Store.DeleteCanteen(id, reqID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCanteenNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "canteen not found"})
		case errors.Is(err, store.ErrStudentNotFound), errors.Is(err, store.ErrPermissionDenied):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "admin privileges required"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete canteen"})
		}
	}

	for _, r := range cancelled {
		metrics.IncReservationCancelled()
		publishReservationEvent(c, h.Publisher, h.Logger, queue.EventReservationCancelled, r, canteenName)
	}
	metrics.IncCanteenMutation("delete")
	return c.NoContent(http.StatusNoContent)
}
