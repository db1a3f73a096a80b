package store

import (
	"sort"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
)

// CreateCanteen registers a new canteen on behalf of an admin. Name and
// location must be unique among live canteens; both are reserved on success
// and released again when the canteen is deleted.
func (s *Store) CreateCanteen(c model.Canteen, requesterID int64) (model.Canteen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(requesterID); err != nil {
		return model.Canteen{}, err
	}
	if _, taken := s.names[c.Name]; taken {
		return model.Canteen{}, ErrDuplicateName
	}
	if _, taken := s.locations[c.Location]; taken {
		return model.Canteen{}, ErrDuplicateLocation
	}

	c.ID = s.nextCanteenID
	s.nextCanteenID++

	stored := copyCanteen(&c)
	s.canteens[c.ID] = &stored
	s.names[c.Name] = struct{}{}
	s.locations[c.Location] = struct{}{}
	return copyCanteen(&stored), nil
}

// GetCanteen returns the canteen with the given id.
func (s *Store) GetCanteen(id int64) (model.Canteen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.canteens[id]
	if !ok {
		return model.Canteen{}, ErrCanteenNotFound
	}
	return copyCanteen(c), nil
}

// ListCanteens returns all canteens ordered by id.
func (s *Store) ListCanteens() []model.Canteen {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Canteen, 0, len(s.canteens))
	for _, c := range s.canteens {
		out = append(out, copyCanteen(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateCanteen applies a sparse patch to an existing canteen. Uniqueness is
// re-validated only for the fields that actually change: the old name or
// location is released and the new one reserved in the same critical
// section, so a concurrent create cannot grab either value in between. The
// canteen keeps its id.
func (s *Store) UpdateCanteen(id int64, patch model.CanteenPatch, requesterID int64) (model.Canteen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(requesterID); err != nil {
		return model.Canteen{}, err
	}
	c, ok := s.canteens[id]
	if !ok {
		return model.Canteen{}, ErrCanteenNotFound
	}

	if patch.Name != nil && *patch.Name != c.Name {
		if _, taken := s.names[*patch.Name]; taken {
			return model.Canteen{}, ErrDuplicateName
		}
	}
	if patch.Location != nil && *patch.Location != c.Location {
		if _, taken := s.locations[*patch.Location]; taken {
			return model.Canteen{}, ErrDuplicateLocation
		}
	}

	if patch.Name != nil && *patch.Name != c.Name {
		delete(s.names, c.Name)
		s.names[*patch.Name] = struct{}{}
		c.Name = *patch.Name
	}
	if patch.Location != nil && *patch.Location != c.Location {
		delete(s.locations, c.Location)
		s.locations[*patch.Location] = struct{}{}
		c.Location = *patch.Location
	}
	if patch.Capacity != nil {
		c.Capacity = *patch.Capacity
	}
	if patch.WorkingHours != nil {
		hours := make([]model.Meal, len(*patch.WorkingHours))
		copy(hours, *patch.WorkingHours)
		c.WorkingHours = hours
	}
	return copyCanteen(c), nil
}

// DeleteCanteen removes a canteen on behalf of an admin. All of its active
// reservations are cancelled in the same critical section, so no reservation
// can briefly reference a canteen that is gone: slots are released, the
// occupancy index is cleared and the canteen's ledger is dropped before the
// name and location become available again. The cancelled reservations are
// returned, ordered by id, so the boundary can count and publish each one
// the same way it does for a direct cancellation.
func (s *Store) DeleteCanteen(id int64, requesterID int64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(requesterID); err != nil {
		return nil, err
	}
	c, ok := s.canteens[id]
	if !ok {
		return nil, ErrCanteenNotFound
	}

	cancelled := make([]model.Reservation, 0)
	for _, r := range s.reservations {
		if r.CanteenID == id && r.Status == model.ReservationActive {
			s.cancelLocked(r)
			cancelled = append(cancelled, *r)
		}
	}
	sort.Slice(cancelled, func(i, j int) bool { return cancelled[i].ID < cancelled[j].ID })

	delete(s.ledgers, id)
	delete(s.names, c.Name)
	delete(s.locations, c.Location)
	delete(s.canteens, id)
	return cancelled, nil
}

// spanWithinMeal reports whether [start, end] fits inside a single meal
// window of the canteen, with closed bounds on both ends: a reservation may
// begin exactly at a window's start and must finish no later than its end.
// The whole span has to fit one window; spanning two adjacent meals fails.
func spanWithinMeal(c *model.Canteen, start, end model.ClockTime) bool {
	for _, m := range c.WorkingHours {
		if m.From <= start && m.To >= end {
			return true
		}
	}
	return false
}

// mealNameAt returns the meal window covering the instant t using the
// half-open rule From <= t < To. Note the asymmetry with spanWithinMeal:
// status queries label a slot starting exactly at a window's end as
// uncovered, while admission would accept a zero-length span there. This
// matches the long-standing behaviour of the system being replaced and must
// not be unified without renegotiating the external contract.
func mealNameAt(c *model.Canteen, t model.ClockTime) (string, bool) {
	for _, m := range c.WorkingHours {
		if m.From <= t && t < m.To {
			return m.Name, true
		}
	}
	return "", false
}
