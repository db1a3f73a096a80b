// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into an audit log.
package queue

// Event types carried on the reservation.events queue.
const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published when a reservation is committed or
// cancelled. It carries enough context for downstream consumers to log or
// notify without calling back into the service.
type ReservationEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	ReservationID int64  `json:"reservation_id"`
	StudentID     int64  `json:"student_id"`
	CanteenID     int64  `json:"canteen_id"`
	CanteenName   string `json:"canteen_name"`
	Date          string `json:"date"`     // "YYYY-MM-DD"
	Time          string `json:"time"`     // "HH:MM"
	Duration      int    `json:"duration"` // minutes
	EmittedAt     string `json:"emitted_at"`
}
