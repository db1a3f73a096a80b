// Package handler implements the HTTP boundary of the reservation service.
// Handlers parse and validate payloads, call into the store, and translate
// its sentinel errors into the status codes the existing consumer expects:
// 404 for unknown ids, 418 for every validation and permission failure, and
// the usual 2xx family on success.
package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/campus-canteen-reservation/internal/middleware"
	"github.com/iliyamo/campus-canteen-reservation/internal/model"
	"github.com/iliyamo/campus-canteen-reservation/internal/queue"
	"github.com/iliyamo/campus-canteen-reservation/internal/service"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

// requesterID returns the identity parsed from the studentId header, or
// false when the request carried none.
func requesterID(c echo.Context) (int64, bool) {
	return middleware.StudentID(c)
}

// publishReservationEvent emits one reservation event, best-effort. Both the
// direct cancel path and the delete-canteen cascade go through here so every
// lifecycle transition produces the same event shape.
func publishReservationEvent(c echo.Context, pub *service.Publisher, logger zerolog.Logger, eventType string, r model.Reservation, canteenName string) {
	if !pub.Enabled() {
		return
	}
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		StudentID:     r.StudentID,
		CanteenID:     r.CanteenID,
		CanteenName:   canteenName,
		Date:          r.Date.String(),
		Time:          r.Time.String(),
		Duration:      r.Duration,
	}
	if err := pub.Publish(c.Request().Context(), ev); err != nil {
		logger.Warn().Err(err).Str("type", eventType).Int64("reservation_id", r.ID).Msg("event publish failed")
	}
}

// rejectionReason maps a store fault to the label used on the rejection
// metric.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, store.ErrStudentNotFound):
		return "student_not_found"
	case errors.Is(err, store.ErrCanteenNotFound):
		return "canteen_not_found"
	case errors.Is(err, store.ErrPastDate):
		return "past_date"
	case errors.Is(err, store.ErrOverlap):
		return "overlap"
	case errors.Is(err, store.ErrOutsideWorkingHours):
		return "outside_working_hours"
	case errors.Is(err, store.ErrCanteenFull):
		return "canteen_full"
	case errors.Is(err, store.ErrInvalidDuration):
		return "invalid_duration"
	default:
		return "other"
	}
}
