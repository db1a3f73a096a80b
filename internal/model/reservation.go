package model

// ReservationStatus is the lifecycle state of a reservation. The only
// transition is Active → Cancelled; a cancelled reservation never becomes
// active again and its slots are released the moment it is cancelled.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// Reservation is a student's claim on one or two consecutive 30-minute
// slots of a canteen. Duration is minutes and only 30 or 60 are accepted;
// a 60-minute reservation occupies the slot at Time and the one at
// Time+30m, not a third slot at Time+60m.
type Reservation struct {
	ID        int64             `json:"id"`
	CanteenID int64             `json:"canteenId"`
	StudentID int64             `json:"studentId"`
	Date      Date              `json:"date"`
	Time      ClockTime         `json:"time"`
	Duration  int               `json:"duration"`
	Status    ReservationStatus `json:"status"`
}
