package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustClock(t *testing.T, s string) model.ClockTime {
	t.Helper()
	ct, err := model.ParseClockTime(s)
	require.NoError(t, err)
	return ct
}

// futureDate returns a date safely in the future so admission never trips the
// past-date rule regardless of when the tests run.
func futureDate(days int) model.Date {
	return model.DateOf(time.Now().AddDate(0, 0, days))
}

func TestLedgerIncrementDecrement(t *testing.T) {
	s := New()
	key := model.SlotKey{Date: mustDate(t, "2031-02-09"), Time: mustClock(t, "12:00")}

	s.IncrementSlot(1, key)
	s.IncrementSlot(1, key)
	assert.False(t, s.IsSlotFull(1, key, 3))
	assert.True(t, s.IsSlotFull(1, key, 2))

	require.NoError(t, s.DecrementSlot(1, key))
	assert.False(t, s.IsSlotFull(1, key, 2))

	// Dropping to zero removes the counter entirely.
	require.NoError(t, s.DecrementSlot(1, key))
	assert.Empty(t, s.ledgers[int64(1)])
	assert.ErrorIs(t, s.DecrementSlot(1, key), ErrNoSuchSlot)
}

func TestLedgerDecrementUnknownCanteen(t *testing.T) {
	s := New()
	key := model.SlotKey{Date: mustDate(t, "2031-02-09"), Time: mustClock(t, "12:00")}
	assert.ErrorIs(t, s.DecrementSlot(42, key), ErrNoSuchLedger)
}

func TestIsSlotFullAbsentCounter(t *testing.T) {
	s := New()
	key := model.SlotKey{Date: mustDate(t, "2031-02-09"), Time: mustClock(t, "12:00")}
	assert.False(t, s.IsSlotFull(1, key, 1))
	// Zero capacity is degenerate but must still read as full.
	assert.True(t, s.IsSlotFull(1, key, 0))
}

func TestStatusRange(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c, err := s.CreateCanteen(model.Canteen{
		Name:     "North Hall",
		Location: "Building A",
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

	slots, err := s.StatusRange(c.ID, date, date, mustClock(t, "11:00"), mustClock(t, "15:00"), 30)
	require.NoError(t, err)

	// 11:00 and 11:30 fall before lunch, 14:00 and 14:30 at or after its end;
	// only the four covered steps are reported.
	require.Len(t, slots, 4)
	assert.Equal(t, "12:00", slots[0].Start.String())
	assert.Equal(t, 9, slots[0].RemainingCapacity)
	assert.Equal(t, "12:30", slots[1].Start.String())
	assert.Equal(t, 9, slots[1].RemainingCapacity)
	assert.Equal(t, "13:00", slots[2].Start.String())
	assert.Equal(t, 10, slots[2].RemainingCapacity)
	assert.Equal(t, "13:30", slots[3].Start.String())
	assert.Equal(t, 10, slots[3].RemainingCapacity)
	for _, slot := range slots {
		assert.Equal(t, "lunch", slot.Meal)
		assert.Equal(t, date, slot.Date)
	}
}

func TestStatusRangeMultipleDays(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c, err := s.CreateCanteen(model.Canteen{
		Name:     "North Hall",
		Location: "Building A",
		Capacity: 5,
		WorkingHours: []model.Meal{
			{Name: "breakfast", From: mustClock(t, "08:00"), To: mustClock(t, "09:00")},
		},
	}, admin.ID)
	require.NoError(t, err)

	start := futureDate(7)
	end := start.AddDays(2)
	slots, err := s.StatusRange(c.ID, start, end, mustClock(t, "08:00"), mustClock(t, "09:00"), 30)
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, start, slots[0].Date)
	assert.Equal(t, end, slots[5].Date)
}

func TestStatusRangeRejectsBadStep(t *testing.T) {
	s := New()
	admin := seedAdmin(t, s)
	c, err := s.CreateCanteen(model.Canteen{
		Name:     "North Hall",
		Location: "Building A",
		Capacity: 5,
		WorkingHours: []model.Meal{
			{Name: "lunch", From: mustClock(t, "12:00"), To: mustClock(t, "14:00")},
		},
	}, admin.ID)
	require.NoError(t, err)

	for _, step := range []int{0, 15, 45, 90} {
		_, err := s.StatusRange(c.ID, futureDate(1), futureDate(1), mustClock(t, "12:00"), mustClock(t, "14:00"), step)
		assert.ErrorIs(t, err, ErrInvalidDuration, "step %d", step)
	}
}

func TestStatusRangeUnknownCanteen(t *testing.T) {
	s := New()
	_, err := s.StatusRange(99, futureDate(1), futureDate(1), mustClock(t, "12:00"), mustClock(t, "14:00"), 30)
	assert.ErrorIs(t, err, ErrCanteenNotFound)
}
