package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
)

func TestOccupiedSlots(t *testing.T) {
	date := mustDate(t, "2031-02-09")
	noon := mustClock(t, "12:00")

	slots, err := OccupiedSlots(date, noon, 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2031-02-09|12:00", slots[0].String())

	slots, err = OccupiedSlots(date, noon, 60)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2031-02-09|12:00", slots[0].String())
	assert.Equal(t, "2031-02-09|12:30", slots[1].String())

	for _, d := range []int{0, 15, 45, 90, 120, -30} {
		_, err := OccupiedSlots(date, noon, d)
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %d", d)
	}
}

func TestCreateReservation(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	student := seedStudent(t, s, "lena@uni.test")

	date := futureDate(7)
	r, err := s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, model.ReservationActive, r.Status)
	assert.Equal(t, c.ID, r.CanteenID)
	assert.Equal(t, student.ID, r.StudentID)
	assert.Equal(t, 60, r.Duration)

	assert.True(t, s.IsOccupied(student.ID, model.SlotKey{Date: date, Time: mustClock(t, "12:00")}))
	assert.True(t, s.IsOccupied(student.ID, model.SlotKey{Date: date, Time: mustClock(t, "12:30")}))
	assert.False(t, s.IsOccupied(student.ID, model.SlotKey{Date: date, Time: mustClock(t, "13:00")}))
}

func TestCreateReservationUnknownParties(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)

	_, err := s.CreateReservation(c.ID, 404, futureDate(7), mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	student := seedStudent(t, s, "lena@uni.test")
	_, err = s.CreateReservation(404, student.ID, futureDate(7), mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrCanteenNotFound)
}

func TestCreateReservationPastDate(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	student := seedStudent(t, s, "lena@uni.test")

	// Pin the clock between lunch slots so "12:00 today" is in the past and
	// "12:30 today" is not.
	date := mustDate(t, "2031-02-09")
	s.now = func() time.Time { return date.At(mustClock(t, "12:15"), time.Local) }

	_, err := s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = s.CreateReservation(c.ID, student.ID, date.AddDays(-1), mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:30"), 30)
	assert.NoError(t, err)
}

func TestCreateReservationOverlap(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	other, err := s.CreateCanteen(model.Canteen{
		Name:     "Annex",
		Location: "East Wing",
		Capacity: 10,
		WorkingHours: []model.Meal{
			{Name: "lunch", From: mustClock(t, "12:00"), To: mustClock(t, "14:00")},
		},
	}, admin.ID)
	require.NoError(t, err)
	student := seedStudent(t, s, "lena@uni.test")

	date := futureDate(7)
	_, err = s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 60)
	require.NoError(t, err)

	// Same slot, same canteen.
	_, err = s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrOverlap)

	// The second half of the 60-minute span is occupied too, even at a
	// different canteen: overlap is per student across the whole campus.
	_, err = s.CreateReservation(other.ID, student.ID, date, mustClock(t, "12:30"), 30)
	assert.ErrorIs(t, err, ErrOverlap)

	// Adjacent slot is free.
	_, err = s.CreateReservation(c.ID, student.ID, date, mustClock(t, "13:00"), 30)
	assert.NoError(t, err)
}

func TestCreateReservationWorkingHours(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10) // dinner 18:00-20:00
	_ = seedStudent(t, s, "lena@uni.test")
	date := futureDate(7)

	cases := []struct {
		name     string
		start    string
		duration int
		wantErr  error
	}{
		{"starts at window open", "18:00", 30, nil},
		{"ends exactly at window close", "19:30", 30, nil},
		{"60 minutes ending at close", "19:00", 60, nil},
		{"60 minutes overrunning close", "19:30", 60, ErrOutsideWorkingHours},
		{"before any window", "11:30", 30, ErrOutsideWorkingHours},
		{"between windows", "15:00", 30, ErrOutsideWorkingHours},
		{"starts at window close", "20:00", 30, ErrOutsideWorkingHours},
		{"overruns the lunch window", "13:30", 60, ErrOutsideWorkingHours},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := seedStudent(t, s, fmt.Sprintf("s%d@uni.test", i))
			_, err := s.CreateReservation(c.ID, st.ID, date, mustClock(t, tc.start), tc.duration)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCreateReservationCanteenFull(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	date := futureDate(7)

	for i := 0; i < 10; i++ {
		st := seedStudent(t, s, fmt.Sprintf("s%d@uni.test", i))
		_, err := s.CreateReservation(c.ID, st.ID, date, mustClock(t, "12:00"), 30)
		require.NoError(t, err)
	}

	late := seedStudent(t, s, "late@uni.test")
	_, err := s.CreateReservation(c.ID, late.ID, date, mustClock(t, "12:00"), 30)
	assert.ErrorIs(t, err, ErrCanteenFull)

	// The neighbouring slot is untouched.
	_, err = s.CreateReservation(c.ID, late.ID, date, mustClock(t, "12:30"), 30)
	assert.NoError(t, err)
}

func TestCreateReservationFullSecondSlot(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 1)
	first := seedStudent(t, s, "first@uni.test")
	second := seedStudent(t, s, "second@uni.test")
	date := futureDate(7)

	_, err := s.CreateReservation(c.ID, first.ID, date, mustClock(t, "12:30"), 30)
	require.NoError(t, err)

	// A 60-minute request whose second slot is taken must fail whole.
	_, err = s.CreateReservation(c.ID, second.ID, date, mustClock(t, "12:00"), 60)
	assert.ErrorIs(t, err, ErrCanteenFull)

	// Nothing from the failed attempt leaked into the ledger.
	assert.False(t, s.IsSlotFull(c.ID, model.SlotKey{Date: date, Time: mustClock(t, "12:00")}, 1))
	assert.False(t, s.IsOccupied(second.ID, model.SlotKey{Date: date, Time: mustClock(t, "12:00")}))
}

func TestCancelReservationRestoresState(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 1)
	student := seedStudent(t, s, "lena@uni.test")
	date := futureDate(7)

	r, err := s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 60)
	require.NoError(t, err)

	cancelled, err := s.CancelReservation(r.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)

	// Both slots are free again for anyone, including the same student.
	_, err = s.CreateReservation(c.ID, student.ID, date, mustClock(t, "12:00"), 60)
	assert.NoError(t, err)
}

func TestCancelReservationTwice(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	student := seedStudent(t, s, "lena@uni.test")

	r, err := s.CreateReservation(c.ID, student.ID, futureDate(7), mustClock(t, "12:00"), 30)
	require.NoError(t, err)

	_, err = s.CancelReservation(r.ID, student.ID)
	require.NoError(t, err)

	// A cancelled reservation is indistinguishable from a missing one.
	_, err = s.CancelReservation(r.ID, student.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = s.CancelReservation(999, student.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservationPermissions(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	owner := seedStudent(t, s, "owner@uni.test")
	other := seedStudent(t, s, "other@uni.test")

	r, err := s.CreateReservation(c.ID, owner.ID, futureDate(7), mustClock(t, "12:00"), 30)
	require.NoError(t, err)

	_, err = s.CancelReservation(r.ID, other.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.CancelReservation(r.ID, 12345)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// An admin may cancel anyone's reservation.
	cancelled, err := s.CancelReservation(r.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)
}

func TestListReservationsByStudent(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 10)
	lena := seedStudent(t, s, "lena@uni.test")
	marc := seedStudent(t, s, "marc@uni.test")
	date := futureDate(7)

	r1, err := s.CreateReservation(c.ID, lena.ID, date, mustClock(t, "12:00"), 30)
	require.NoError(t, err)
	_, err = s.CreateReservation(c.ID, marc.ID, date, mustClock(t, "12:00"), 30)
	require.NoError(t, err)
	r2, err := s.CreateReservation(c.ID, lena.ID, date, mustClock(t, "13:00"), 30)
	require.NoError(t, err)
	_, err = s.CancelReservation(r1.ID, lena.ID)
	require.NoError(t, err)

	list, err := s.ListReservationsByStudent(lena.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, r1.ID, list[0].ID)
	assert.Equal(t, model.ReservationCancelled, list[0].Status)
	assert.Equal(t, r2.ID, list[1].ID)
	assert.Equal(t, model.ReservationActive, list[1].Status)

	_, err = s.ListReservationsByStudent(999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestConcurrentCreatesLastSeat(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c := seedCanteen(t, s, admin.ID, 1)
	date := futureDate(7)

	const n = 16
	students := make([]model.Student, n)
	for i := range students {
		students[i] = seedStudent(t, s, fmt.Sprintf("s%d@uni.test", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateReservation(c.ID, students[i].ID, date, mustClock(t, "12:00"), 30)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrCanteenFull)
		}
	}
	assert.Equal(t, 1, won)
}
