package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment/alignmenttest"
)

func memoryOpener(mem *alignmenttest.Memory) openFunc {
	now := time.Date(2026, 10, 15, 4, 30, 0, 0, time.UTC)
	return func(string) (Engine, error) {
		return alignment.NewService(mem.Sources(), alignment.DefaultSettings()).
			WithClock(func() time.Time { return now }), nil
	}
}

func run(t *testing.T, open openFunc, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecompute(t *testing.T) {
	mem := alignmenttest.NewMemory()
	goal := "g1"
	mem.Goals = []db.Goal{{ID: goal, UserID: "u1", Name: "Deep Work", IsActive: true}}
	mem.Checkins = []db.HabitCheckin{{
		UserID:   "u1",
		Date:     time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC),
		ValueMin: 120,
		GoalID:   &goal,
	}}

	out, err := run(t, memoryOpener(mem), "recompute", "--user", "u1", "--date", "2026-10-15")
	require.NoError(t, err)

	assert.Contains(t, out, `"date": "2026-10-15"`)
	assert.Contains(t, out, `"score24": 2`)
	assert.Equal(t, 1, mem.RecordCount())
}

func TestWeeklyAndStreak(t *testing.T) {
	mem := alignmenttest.NewMemory()
	mem.PutRecord(db.GoalAlignedDay{UserID: "u1", Day: "2026-10-13", Score24: 4, TotalGoalAlignedMinutes: 240, CurrentStreak: 2, LongestStreak: 5, TargetHours: 8})

	out, err := run(t, memoryOpener(mem), "weekly", "-u", "u1", "-d", "2026-10-15")
	require.NoError(t, err)
	assert.Contains(t, out, `"weekStart": "2026-10-11"`)
	assert.Contains(t, out, `"qualifyingDays": 1`)

	out, err = run(t, memoryOpener(mem), "streak", "-u", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, `"longestStreak": 5`)
}

func TestUserFlagRequired(t *testing.T) {
	_, err := run(t, memoryOpener(alignmenttest.NewMemory()), "streak")
	assert.ErrorContains(t, err, "user")
}

func TestOpenFailure(t *testing.T) {
	boom := errors.New("no database")
	_, err := run(t, func(string) (Engine, error) { return nil, boom }, "streak", "-u", "u1")
	assert.ErrorIs(t, err, boom)
}

func TestRecompute_InvalidDate(t *testing.T) {
	_, err := run(t, memoryOpener(alignmenttest.NewMemory()), "recompute", "-u", "u1", "-d", "yesterday")
	assert.ErrorIs(t, err, alignment.ErrInvalidDate)
}
