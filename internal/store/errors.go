// Package store implements the in-memory reservation engine: the canteen
// directory, the per-canteen capacity ledger, the per-student occupancy
// index and the reservation lifecycle that keeps them consistent.
//
// This file defines the sentinel error values shared across the store.
// Every operation either succeeds or returns exactly one of these values,
// which lets handlers pick HTTP status codes with errors.Is without parsing
// error text. The store itself never logs and never retries: all faults are
// deterministic functions of the current state and the input.
package store

import "errors"

// ErrStudentNotFound is returned when a referenced student id is unknown.
var ErrStudentNotFound = errors.New("student not found")

// ErrCanteenNotFound is returned when a referenced canteen id is unknown.
var ErrCanteenNotFound = errors.New("canteen not found")

// ErrReservationNotFound is returned when a reservation id is unknown or the
// reservation is no longer Active. Cancelling an already-cancelled
// reservation is deliberately indistinguishable from cancelling a
// non-existent one; existing consumers depend on the single 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrPermissionDenied is returned when the requesting student lacks the
// required privilege: canteen mutation by a non-admin, or cancelling a
// reservation owned by someone else without admin rights.
var ErrPermissionDenied = errors.New("permission denied")

// ErrDuplicateEmail is returned when registering a student with an email
// that is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateName is returned when a canteen name is already in use by a
// live canteen.
var ErrDuplicateName = errors.New("canteen name already exists")

// ErrDuplicateLocation is returned when a canteen location is already in
// use by a live canteen.
var ErrDuplicateLocation = errors.New("canteen location already exists")

// ErrPastDate is returned when a reservation's start instant has already
// elapsed at evaluation time.
var ErrPastDate = errors.New("reservation date is in the past")

// ErrOverlap is returned when the student already holds an active
// reservation occupying one of the requested slots.
var ErrOverlap = errors.New("overlapping reservation")

// ErrOutsideWorkingHours is returned when the reservation's full span is not
// contained in a single meal window of the canteen.
var ErrOutsideWorkingHours = errors.New("outside working hours")

// ErrCanteenFull is returned when one of the requested slots has reached
// the canteen's capacity.
var ErrCanteenFull = errors.New("canteen is full")

// ErrInvalidDuration is returned for any duration or status-query step that
// is not 30 or 60 minutes.
var ErrInvalidDuration = errors.New("duration must be 30 or 60 minutes")

// ErrNoSuchLedger is returned by a decrement against a canteen that has no
// ledger at all (nothing was ever booked there).
var ErrNoSuchLedger = errors.New("no ledger for canteen")

// ErrNoSuchSlot is returned by a decrement against a slot with no counter.
var ErrNoSuchSlot = errors.New("no counter for slot")

// ErrNoSuchOccupancy is returned when clearing an occupancy mark that was
// never set.
var ErrNoSuchOccupancy = errors.New("occupancy not marked")
