package store

import "github.com/iliyamo/campus-canteen-reservation/internal/model"

// The capacity ledger: per-canteen counters of active reservations keyed by
// slot. Counters only exist while they are positive; an absent counter reads
// as zero, so a cancelled reservation restores the ledger to exactly its
// pre-booking shape.

// IncrementSlot bumps the counter for a slot, creating the canteen's ledger
// and the counter as needed.
func (s *Store) IncrementSlot(canteenID int64, key model.SlotKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementLocked(canteenID, key)
}

// DecrementSlot lowers the counter for a slot. Counters never go negative:
// a counter at 1 is removed rather than set to 0, and decrementing a missing
// counter is an error instead of an underflow.
func (s *Store) DecrementSlot(canteenID int64, key model.SlotKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrementLocked(canteenID, key)
}

// IsSlotFull reports whether the slot's counter has reached capacity. An
// absent counter counts as zero and is never full.
func (s *Store) IsSlotFull(canteenID int64, key model.SlotKey, capacity int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotCountLocked(canteenID, key) >= capacity
}

func (s *Store) incrementLocked(canteenID int64, key model.SlotKey) {
	ledger, ok := s.ledgers[canteenID]
	if !ok {
		ledger = make(map[model.SlotKey]int)
		s.ledgers[canteenID] = ledger
	}
	ledger[key]++
}

func (s *Store) decrementLocked(canteenID int64, key model.SlotKey) error {
	ledger, ok := s.ledgers[canteenID]
	if !ok {
		return ErrNoSuchLedger
	}
	count, ok := ledger[key]
	if !ok {
		return ErrNoSuchSlot
	}
	if count <= 1 {
		delete(ledger, key)
		return nil
	}
	ledger[key] = count - 1
	return nil
}

func (s *Store) slotCountLocked(canteenID int64, key model.SlotKey) int {
	return s.ledgers[canteenID][key]
}

// StatusRange walks every date in [startDate, endDate] and every step in
// [startTime, endTime) and reports the remaining capacity of each slot that
// falls inside one of the canteen's meal windows. Steps outside every meal
// window are omitted entirely rather than reported as zero. The result is a
// pure function of the ledger and directory state at call time, ordered by
// date then time.
func (s *Store) StatusRange(canteenID int64, startDate, endDate model.Date, startTime, endTime model.ClockTime, stepMinutes int) ([]model.SlotStatus, error) {
	if stepMinutes != 30 && stepMinutes != 60 {
		return nil, ErrInvalidDuration
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.canteens[canteenID]
	if !ok {
		return nil, ErrCanteenNotFound
	}

	out := make([]model.SlotStatus, 0)
	for d := startDate; !d.After(endDate); d = d.AddDays(1) {
		for t := startTime; t < endTime; t = t.Add(stepMinutes) {
			meal, covered := mealNameAt(c, t)
			if !covered {
				continue
			}
			count := s.slotCountLocked(canteenID, model.SlotKey{Date: d, Time: t})
			out = append(out, model.SlotStatus{
				Date:              d,
				Meal:              meal,
				Start:             t,
				RemainingCapacity: c.Capacity - count,
			})
		}
	}
	return out, nil
}
