// Package router wires HTTP routes to their handlers and applies the
// middleware stack.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/campus-canteen-reservation/internal/config"
	"github.com/iliyamo/campus-canteen-reservation/internal/handler"
	"github.com/iliyamo/campus-canteen-reservation/internal/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Students     *handler.StudentHandler
	Canteens     *handler.CanteenHandler
	Reservations *handler.ReservationHandler
	Redis        *redis.Client // nil disables the response cache
	RateLimit    config.RateLimitConfig
	Cache        config.CacheConfig
	Logger       zerolog.Logger
	Metrics      bool
}

// Register sets up all routes. Identity extraction and the rate limiter run
// on everything; the Redis response cache covers only the read-only browse
// endpoints, where serving a slightly stale body is harmless.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.StudentIdentity())
	e.Use(middleware.TokenBucket(d.RateLimit))

	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)
	if d.Metrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.POST("/students", d.Students.Create)
	e.GET("/students/:id", d.Students.Get)

	cached := middleware.ResponseCache(d.Cache, d.Redis)
	e.GET("/canteens", d.Canteens.List, cached)
	e.GET("/canteens/:id", d.Canteens.Get, cached)
	e.GET("/canteens/:id/status", d.Canteens.Status, cached)

	e.POST("/canteens", d.Canteens.Create)
	e.PUT("/canteens/:id", d.Canteens.Update)
	e.DELETE("/canteens/:id", d.Canteens.Delete)

	e.POST("/reservations", d.Reservations.Create)
	e.GET("/reservations", d.Reservations.List)
	e.DELETE("/reservations/:id", d.Reservations.Cancel)
}
