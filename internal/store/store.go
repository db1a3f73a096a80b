package store

import (
	"sync"
	"time"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
)

// Store holds the whole reservation state for the lifetime of the process.
// It is constructed once in main and passed to every handler; there is no
// package-level instance. State does not survive restarts.
//
// A single RWMutex guards everything. Mutations (student registration,
// canteen CRUD, reservation create/cancel) take the write lock so the
// validate-then-commit sequences are serializable: two concurrent creates
// racing for the last seat of a slot cannot both pass the fullness check.
// Read-only operations take the read lock and return copies, never
// references into the maps.
type Store struct {
	mu sync.RWMutex

	students     map[int64]*model.Student
	canteens     map[int64]*model.Canteen
	reservations map[int64]*model.Reservation

	// ledgers counts active reservations per canteen per slot. A canteen's
	// ledger is created on first increment and removed when the canteen is
	// deleted.
	ledgers map[int64]map[model.SlotKey]int

	// occupancy records which slots each student currently holds. Presence
	// is boolean: a student can never hold two active reservations on the
	// same slot, so no count is needed.
	occupancy map[int64]map[model.SlotKey]struct{}

	emails    map[string]struct{}
	names     map[string]struct{}
	locations map[string]struct{}

	nextStudentID     int64
	nextCanteenID     int64
	nextReservationID int64

	// now is time.Now in production; tests substitute a fixed clock to
	// exercise the past-date rule deterministically.
	now func() time.Time
}

// New returns an empty store. Identifiers start at 1 like the system this
// service replaces, so existing consumers keep their assumptions.
func New() *Store {
	return &Store{
		students:          make(map[int64]*model.Student),
		canteens:          make(map[int64]*model.Canteen),
		reservations:      make(map[int64]*model.Reservation),
		ledgers:           make(map[int64]map[model.SlotKey]int),
		occupancy:         make(map[int64]map[model.SlotKey]struct{}),
		emails:            make(map[string]struct{}),
		names:             make(map[string]struct{}),
		locations:         make(map[string]struct{}),
		nextStudentID:     1,
		nextCanteenID:     1,
		nextReservationID: 1,
		now:               time.Now,
	}
}

// copyCanteen returns a detached copy so callers cannot mutate stored state
// through the returned value. The working-hours slice is duplicated too.
func copyCanteen(c *model.Canteen) model.Canteen {
	out := *c
	out.WorkingHours = make([]model.Meal, len(c.WorkingHours))
	copy(out.WorkingHours, c.WorkingHours)
	return out
}
