package alignment

import (
	"fmt"
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

var propertyGoals = []db.Goal{
	{ID: "g-0", Name: "Deep Work", IsActive: true},
	{ID: "g-1", Name: "Fitness", IsActive: true},
	{ID: "g-2", Name: "Reading", IsActive: true},
}

// drawInputs generates a day of activity that only references known goals.
func drawInputs(t *rapid.T, w DayWindow) Inputs {
	goalID := rapid.SampledFrom([]string{"g-0", "g-1", "g-2"})
	offset := rapid.Int64Range(0, int64(24*time.Hour-time.Second))
	minutes := rapid.Float64Range(0, 300)

	in := Inputs{Window: w, Goals: propertyGoals}

	taskCount := rapid.IntRange(0, 6).Draw(t, "tasks")
	for i := 0; i < taskCount; i++ {
		task := db.Task{
			ID:          fmt.Sprintf("t-%d", i),
			GoalIDs:     rapid.SliceOfNDistinct(goalID, 1, 3, rapid.ID[string]).Draw(t, "goalIDs"),
			CompletedAt: ptr(w.Start.Add(time.Duration(offset.Draw(t, "completedAt")))),
		}
		if rapid.Bool().Draw(t, "hasDuration") {
			task.DurationMinutes = ptr(minutes.Draw(t, "duration"))
		}
		if rapid.Bool().Draw(t, "hasRating") {
			task.MindfulRating = ptr(rapid.IntRange(1, 5).Draw(t, "rating"))
		}
		in.Tasks = append(in.Tasks, task)
	}

	intervalCount := rapid.IntRange(0, 4).Draw(t, "intervals")
	block := db.ScheduledBlock{ID: "b-0", Date: w.Start}
	for i := 0; i < intervalCount; i++ {
		interval := db.BlockInterval{
			DurationMinutes: minutes.Draw(t, "intervalMinutes"),
			GoalID:          ptr(goalID.Draw(t, "intervalGoal")),
		}
		if taskCount > 0 && rapid.Bool().Draw(t, "linked") {
			interval.TaskID = ptr(fmt.Sprintf("t-%d", rapid.IntRange(0, taskCount-1).Draw(t, "linkedTask")))
		}
		block.Intervals = append(block.Intervals, interval)
	}
	in.Blocks = []db.ScheduledBlock{block}

	checkinCount := rapid.IntRange(0, 3).Draw(t, "checkins")
	for i := 0; i < checkinCount; i++ {
		in.Checkins = append(in.Checkins, db.HabitCheckin{
			Date:     w.Start.Add(time.Duration(offset.Draw(t, "checkinAt"))),
			ValueMin: minutes.Draw(t, "checkinMinutes"),
			GoalID:   ptr(goalID.Draw(t, "checkinGoal")),
		})
	}
	return in
}

func TestAggregate_Properties(t *testing.T) {
	w, err := ResolveDay("2026-10-15", time.Time{}, ist)
	if err != nil {
		t.Fatal(err)
	}
	s := DefaultSettings()

	rapid.Check(t, func(t *rapid.T) {
		in := drawInputs(t, w)
		got := Aggregate(in, s)

		sum := got.BlockMinutes + got.HabitMinutes + got.TaskMinutes
		if got.TotalGoalAlignedMinutes > MinutesPerDay {
			t.Fatalf("total %v exceeds a day", got.TotalGoalAlignedMinutes)
		}
		if want := math.Min(MinutesPerDay, sum); math.Abs(got.TotalGoalAlignedMinutes-want) > 1e-9 {
			t.Fatalf("total %v, want %v", got.TotalGoalAlignedMinutes, want)
		}
		if got.Score24 < 0 || got.Score24 > 24 {
			t.Fatalf("score24 %v out of range", got.Score24)
		}
		if got.ScorePercentage < 0 || got.ScorePercentage > 100 {
			t.Fatalf("percentage %v out of range", got.ScorePercentage)
		}
		if got.TotalGoalAlignedMinutes > 0 && got.ScorePercentage != round1(got.Score24/24*100) {
			t.Fatalf("percentage %v does not follow score24 %v", got.ScorePercentage, got.Score24)
		}
		if got.AverageMindfulRating < 1 || got.AverageMindfulRating > 5 {
			t.Fatalf("average rating %v out of range", got.AverageMindfulRating)
		}
		if got.MindfulMinutes > got.TaskMinutes+1e-9 {
			t.Fatalf("mindful minutes %v exceed task minutes %v", got.MindfulMinutes, got.TaskMinutes)
		}

		breakdownSum := 0.0
		for i, entry := range got.GoalBreakdown {
			breakdownSum += entry.Minutes
			if i > 0 && entry.Minutes > got.GoalBreakdown[i-1].Minutes {
				t.Fatalf("breakdown not sorted at %d", i)
			}
			if entry.PercentageOfDay < 0 || entry.PercentageOfDay > 100 {
				t.Fatalf("percentage of day %v out of range", entry.PercentageOfDay)
			}
		}
		// Each entry is rounded to 0.1, so allow 0.05 per entry.
		tolerance := 0.05*float64(len(got.GoalBreakdown)) + 1e-6
		if math.Abs(breakdownSum-got.TotalGoalAlignedMinutes) > tolerance {
			t.Fatalf("breakdown sums to %v, total is %v", breakdownSum, got.TotalGoalAlignedMinutes)
		}
	})
}

func TestAggregate_UnlinkingIntervalMovesTaskMinutes(t *testing.T) {
	w, err := ResolveDay("2026-10-15", time.Time{}, ist)
	if err != nil {
		t.Fatal(err)
	}
	s := DefaultSettings()

	rapid.Check(t, func(t *rapid.T) {
		duration := rapid.Float64Range(0, 600).Draw(t, "duration")
		task := db.Task{
			ID:              "t-linked",
			GoalIDs:         []string{"g-0"},
			CompletedAt:     ptr(w.Start.Add(time.Hour)),
			DurationMinutes: ptr(duration),
		}
		interval := db.BlockInterval{
			DurationMinutes: rapid.Float64Range(0, 600).Draw(t, "interval"),
			GoalID:          ptr("g-0"),
			TaskID:          ptr(task.ID),
		}
		linked := Inputs{
			Window: w,
			Goals:  propertyGoals,
			Tasks:  []db.Task{task},
			Blocks: []db.ScheduledBlock{{Date: w.Start, Intervals: []db.BlockInterval{interval}}},
		}
		interval.TaskID = nil
		unlinked := linked
		unlinked.Blocks = []db.ScheduledBlock{{Date: w.Start, Intervals: []db.BlockInterval{interval}}}

		before := Aggregate(linked, s)
		after := Aggregate(unlinked, s)

		if math.Abs(after.TaskMinutes-before.TaskMinutes-duration) > 1e-9 {
			t.Fatalf("task minutes moved by %v, want %v", after.TaskMinutes-before.TaskMinutes, duration)
		}
		if after.BlockMinutes != before.BlockMinutes {
			t.Fatalf("block minutes changed from %v to %v", before.BlockMinutes, after.BlockMinutes)
		}
	})
}
