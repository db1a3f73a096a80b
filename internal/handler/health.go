package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home answers the root path with the greeting the original service shipped
// with. Kept as-is; at least one deployed client uses it as a liveness probe.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Haiii"})
}

// Health is the health-check endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
