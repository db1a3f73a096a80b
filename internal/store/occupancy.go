package store

import "github.com/iliyamo/campus-canteen-reservation/internal/model"

// The occupancy index: which slots each student currently holds, across all
// canteens. It exists so overlap detection does not have to scan the
// reservation table.

// MarkOccupied records that the student holds the given slot.
func (s *Store) MarkOccupied(studentID int64, key model.SlotKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markOccupiedLocked(studentID, key)
}

// ClearOccupied removes an occupancy mark. Clearing a mark that was never
// set is an error; it would mean the index and the reservation table have
// diverged.
func (s *Store) ClearOccupied(studentID int64, key model.SlotKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearOccupiedLocked(studentID, key)
}

// IsOccupied reports whether the student holds the given slot.
func (s *Store) IsOccupied(studentID int64, key model.SlotKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, held := s.occupancy[studentID][key]
	return held
}

func (s *Store) markOccupiedLocked(studentID int64, key model.SlotKey) {
	slots, ok := s.occupancy[studentID]
	if !ok {
		slots = make(map[model.SlotKey]struct{})
		s.occupancy[studentID] = slots
	}
	slots[key] = struct{}{}
}

func (s *Store) clearOccupiedLocked(studentID int64, key model.SlotKey) error {
	slots, ok := s.occupancy[studentID]
	if !ok {
		return ErrNoSuchOccupancy
	}
	if _, held := slots[key]; !held {
		return ErrNoSuchOccupancy
	}
	delete(slots, key)
	if len(slots) == 0 {
		delete(s.occupancy, studentID)
	}
	return nil
}
