package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/campus-canteen-reservation/internal/config"
	"github.com/iliyamo/campus-canteen-reservation/internal/handler"
	"github.com/iliyamo/campus-canteen-reservation/internal/metrics"
	"github.com/iliyamo/campus-canteen-reservation/internal/queue"
	"github.com/iliyamo/campus-canteen-reservation/internal/router"
	"github.com/iliyamo/campus-canteen-reservation/internal/service"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.MetricsEnabled {
		metrics.Register()
	}

	s := store.New()
	pub := service.NewPublisher(cfg.RabbitURL)
	rdb := config.NewRedisClient()
	if rdb != nil {
		logger.Info().Msg("redis connected, response cache enabled")
	}

	if pub.Enabled() {
		go queue.StartReservationConsumer(cfg.RabbitURL, logger)
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Students:     handler.NewStudentHandler(s),
		Canteens:     handler.NewCanteenHandler(s, pub, logger),
		Reservations: handler.NewReservationHandler(s, pub, logger),
		Redis:        rdb,
		RateLimit:    config.LoadRateLimitConfig(),
		Cache:        config.LoadCacheConfig(),
		Logger:       logger,
		Metrics:      cfg.MetricsEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
