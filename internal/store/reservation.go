package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
)

// OccupiedSlots expands a reservation request into the slot keys it would
// occupy: one key for a 30-minute reservation, the start key and the one 30
// minutes later for a 60-minute reservation. The two-slot rule is fixed; it
// does not generalise to longer durations, which is why anything other than
// 30 or 60 is rejected here.
func OccupiedSlots(date model.Date, start model.ClockTime, durationMinutes int) ([]model.SlotKey, error) {
	switch durationMinutes {
	case 30:
		return []model.SlotKey{{Date: date, Time: start}}, nil
	case 60:
		return []model.SlotKey{
			{Date: date, Time: start},
			{Date: date, Time: start.Add(30)},
		}, nil
	default:
		return nil, ErrInvalidDuration
	}
}

// CreateReservation validates and commits a new reservation. Checks run in a
// fixed order and the first failure wins: the student must exist, the
// canteen must exist, the start instant must not have passed, the student
// must not already hold any of the requested slots, the full span must fit
// one meal window, and none of the slots may be at capacity. On success the
// ledger is incremented and the occupancy index marked for every slot, the
// record is stored as Active, and everything becomes visible to concurrent
// readers at once because the write lock spans the whole sequence.
func (s *Store) CreateReservation(canteenID, studentID int64, date model.Date, start model.ClockTime, durationMinutes int) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[studentID]; !ok {
		return model.Reservation{}, ErrStudentNotFound
	}
	c, ok := s.canteens[canteenID]
	if !ok {
		return model.Reservation{}, ErrCanteenNotFound
	}
	if date.At(start, time.Local).Before(s.now()) {
		return model.Reservation{}, ErrPastDate
	}

	slots, err := OccupiedSlots(date, start, durationMinutes)
	if err != nil {
		return model.Reservation{}, err
	}
	for _, key := range slots {
		if _, held := s.occupancy[studentID][key]; held {
			return model.Reservation{}, ErrOverlap
		}
	}
	if !spanWithinMeal(c, start, start.Add(durationMinutes)) {
		return model.Reservation{}, ErrOutsideWorkingHours
	}
	for _, key := range slots {
		if s.slotCountLocked(canteenID, key) >= c.Capacity {
			return model.Reservation{}, ErrCanteenFull
		}
	}

	r := model.Reservation{
		ID:        s.nextReservationID,
		CanteenID: canteenID,
		StudentID: studentID,
		Date:      date,
		Time:      start,
		Duration:  durationMinutes,
		Status:    model.ReservationActive,
	}
	s.nextReservationID++

	for _, key := range slots {
		s.incrementLocked(canteenID, key)
		s.markOccupiedLocked(studentID, key)
	}
	stored := r
	s.reservations[r.ID] = &stored
	return r, nil
}

// CancelReservation cancels an active reservation on behalf of its owner or
// an admin. Unknown ids and already-cancelled reservations are reported the
// same way. The ledger and occupancy entries for every occupied slot are
// released before the updated record is returned.
func (s *Store) CancelReservation(id, requesterID int64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok || r.Status != model.ReservationActive {
		return model.Reservation{}, ErrReservationNotFound
	}
	if requesterID != r.StudentID {
		requester, ok := s.students[requesterID]
		if !ok || !requester.IsAdmin {
			return model.Reservation{}, ErrPermissionDenied
		}
	}

	s.cancelLocked(r)
	return *r, nil
}

// ListReservationsByStudent returns every reservation the student has ever
// made, cancelled ones included, ordered by id.
func (s *Store) ListReservationsByStudent(studentID int64) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.students[studentID]; !ok {
		return nil, ErrStudentNotFound
	}
	out := make([]model.Reservation, 0)
	for _, r := range s.reservations {
		if r.StudentID == studentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// cancelLocked flips an active reservation to Cancelled and releases its
// ledger counters and occupancy marks. A missing counter or mark here means
// the commit in CreateReservation was not atomic after all; that is a broken
// invariant, not a recoverable fault, so it panics.
func (s *Store) cancelLocked(r *model.Reservation) {
	slots, err := OccupiedSlots(r.Date, r.Time, r.Duration)
	if err != nil {
		panic(fmt.Sprintf("stored reservation %d has invalid duration %d", r.ID, r.Duration))
	}
	for _, key := range slots {
		if err := s.decrementLocked(r.CanteenID, key); err != nil {
			panic(fmt.Sprintf("ledger out of sync cancelling reservation %d at %s: %v", r.ID, key, err))
		}
		if err := s.clearOccupiedLocked(r.StudentID, key); err != nil {
			panic(fmt.Sprintf("occupancy out of sync cancelling reservation %d at %s: %v", r.ID, key, err))
		}
	}
	r.Status = model.ReservationCancelled
}
