package alignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = DefaultSettings().Offset

func TestResolveDay_CalendarDate(t *testing.T) {
	w, err := ResolveDay("2026-10-15", time.Time{}, ist)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-15", w.Date)
	assert.Equal(t, time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC), w.End)
	assert.Equal(t, time.UTC, w.Start.Location())
}

func TestResolveDay_EmptyUsesNowInOffset(t *testing.T) {
	// 20:00 UTC is already 01:30 the next day at +05:30.
	now := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

	w, err := ResolveDay("", now, ist)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", w.Date)
}

func TestResolveDay_IgnoresServerZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	instant := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	fromUTC, err := ResolveDay("", instant, ist)
	require.NoError(t, err)
	fromNY, err := ResolveDay("", instant.In(ny), ist)
	require.NoError(t, err)

	assert.Equal(t, fromUTC.Date, fromNY.Date)
	assert.Equal(t, fromUTC.Start, fromNY.Start)
	assert.Equal(t, fromUTC.End, fromNY.End)
}

func TestResolveDay_RFC3339(t *testing.T) {
	w, err := ResolveDay("2026-10-15T19:00:00Z", time.Time{}, ist)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", w.Date)
}

func TestResolveDay_Invalid(t *testing.T) {
	for _, input := range []string{"yesterday", "2026-13-01", "15/10/2026", "2026-10-15T25:00"} {
		_, err := ResolveDay(input, time.Now(), ist)
		assert.ErrorIs(t, err, ErrInvalidDate, input)
	}
}

func TestDayWindow_Contains(t *testing.T) {
	w, err := ResolveDay("2026-10-15", time.Time{}, ist)
	require.NoError(t, err)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestDayWindow_Previous(t *testing.T) {
	w, err := ResolveDay("2026-03-01", time.Time{}, ist)
	require.NoError(t, err)

	prev := w.Previous()
	assert.Equal(t, "2026-02-28", prev.Date)
	assert.Equal(t, w.Start.Add(-24*time.Hour), prev.Start)
	assert.Equal(t, w.Start, prev.End)
}

func TestDayWindow_Week(t *testing.T) {
	cases := map[string]WeekRange{
		// Thursday
		"2026-10-15": {Start: "2026-10-11", End: "2026-10-18", Saturday: "2026-10-17"},
		// Sunday starts its own week
		"2026-10-11": {Start: "2026-10-11", End: "2026-10-18", Saturday: "2026-10-17"},
		// Saturday closes it
		"2026-10-17": {Start: "2026-10-11", End: "2026-10-18", Saturday: "2026-10-17"},
		// Week spanning a year boundary
		"2026-01-01": {Start: "2025-12-28", End: "2026-01-04", Saturday: "2026-01-03"},
	}
	for date, want := range cases {
		w, err := ResolveDay(date, time.Time{}, ist)
		require.NoError(t, err)
		assert.Equal(t, want, w.Week(), date)
	}
}
