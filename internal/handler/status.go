package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

// Status handles GET /canteens/:id/status. It reports the remaining
// capacity of every meal-covered slot in the requested date/time window,
// stepping by 30 or 60 minutes. Query parameters: startDate, endDate
// (YYYY-MM-DD), startTime, endTime (HH:MM), step (minutes, default 30).
func (h *CanteenHandler) Status(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	startDate, err := model.ParseDate(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid startDate"})
	}
	endDate, err := model.ParseDate(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid endDate"})
	}
	startTime, err := model.ParseClockTime(c.QueryParam("startTime"))
	if err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid startTime"})
	}
	endTime, err := model.ParseClockTime(c.QueryParam("endTime"))
	if err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid endTime"})
	}
	if startDate.After(endDate) {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "endDate before startDate"})
	}

	step := model.SlotMinutes
	if v := c.QueryParam("step"); v != "" {
		step, err = strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid step"})
		}
	}

	slots, err := h.Store.StatusRange(id, startDate, endDate, startTime, endTime, step)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCanteenNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "canteen not found"})
		case errors.Is(err, store.ErrInvalidDuration):
			return c.JSON(http.StatusTeapot, echo.Map{"error": "step must be 30 or 60"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute status"})
		}
	}
	return c.JSON(http.StatusOK, slots)
}
