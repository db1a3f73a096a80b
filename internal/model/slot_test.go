package model

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2031-02-09")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2031, Month: time.February, Day: 9}, d)
	assert.Equal(t, "2031-02-09", d.String())

	for _, bad := range []string{"", "2031-2-9", "09-02-2031", "2031-13-01", "not a date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("12:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(12*60+30), ct)
	assert.Equal(t, "12:30", ct.String())

	for _, bad := range []string{"", "24:00", "12:60", "noon"} {
		_, err := ParseClockTime(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestClockTimeAdd(t *testing.T) {
	noon, _ := ParseClockTime("12:00")
	assert.Equal(t, "12:30", noon.Add(30).String())
	assert.Equal(t, "13:00", noon.Add(60).String())

	late, _ := ParseClockTime("23:45")
	// Past-midnight results are not wrapped; containment checks must see the
	// overflow and fail.
	assert.True(t, late.Add(30) > ClockTime(23*60+59))
}

func TestSlotKeyString(t *testing.T) {
	d, _ := ParseDate("2031-02-09")
	ct, _ := ParseClockTime("09:30")
	key := SlotKey{Date: d, Time: ct}
	assert.Equal(t, "2031-02-09|09:30", key.String())
}

func TestSlotKeyStringSortsChronologically(t *testing.T) {
	mk := func(date, clock string) SlotKey {
		d, err := ParseDate(date)
		require.NoError(t, err)
		ct, err := ParseClockTime(clock)
		require.NoError(t, err)
		return SlotKey{Date: d, Time: ct}
	}

	keys := []SlotKey{
		mk("2031-02-10", "08:00"),
		mk("2031-02-09", "19:30"),
		mk("2031-02-09", "08:00"),
		mk("2030-12-31", "23:30"),
	}
	rendered := make([]string, len(keys))
	for i, k := range keys {
		rendered[i] = k.String()
	}
	sort.Strings(rendered)

	assert.Equal(t, []string{
		"2030-12-31|23:30",
		"2031-02-09|08:00",
		"2031-02-09|19:30",
		"2031-02-10|08:00",
	}, rendered)
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d, _ := ParseDate("2031-01-31")
	assert.Equal(t, "2031-02-01", d.AddDays(1).String())
	assert.Equal(t, "2031-01-30", d.AddDays(-1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2031-02-09")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2031-02-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &back))
}

func TestClockTimeJSONRejectsMalformed(t *testing.T) {
	var ct ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"08:30"`), &ct))
	assert.Equal(t, ClockTime(8*60+30), ct)
	assert.Error(t, json.Unmarshal([]byte(`"8:30pm"`), &ct))
}
