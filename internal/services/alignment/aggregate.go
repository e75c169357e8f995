package alignment

import (
	"math"
	"sort"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

// MinutesPerDay is the ceiling of totalGoalAlignedMinutes.
const MinutesPerDay = 24 * 60

// Inputs is the immutable snapshot one aggregation pass works on.
type Inputs struct {
	Window   DayWindow
	Goals    []db.Goal
	Tasks    []db.Task
	Blocks   []db.ScheduledBlock
	Checkins []db.HabitCheckin
}

// Tally is everything the engine derives for a day except the streak.
type Tally struct {
	TasksGoalAligned        int
	BlockMinutes            float64
	HabitMinutes            float64
	TaskMinutes             float64
	TotalGoalAlignedMinutes float64
	Score24                 float64
	ScorePercentage         float64
	GoalBreakdown           []db.GoalBreakdown
	MindfulTaskCount        int
	MindfulMinutes          float64
	AverageMindfulRating    float64
}

type taskDisposition int

const (
	standaloneTask taskDisposition = iota
	consumedByBlock
)

// taskUnit is a goal-tagged task with its defaults already substituted and its
// accounting path decided.
type taskUnit struct {
	goalIDs     []string
	minutes     float64
	rating      int
	disposition taskDisposition
}

// Aggregate reconciles blocks, check-ins and tasks of one day into a Tally.
// It is a pure function of its arguments.
func Aggregate(in Inputs, s Settings) Tally {
	var t Tally
	goalMinutes := make(map[string]float64)
	goalMindful := make(map[string]float64)

	consumed := make(map[string]struct{})
	for _, block := range in.Blocks {
		if !in.Window.Contains(block.Date) {
			continue
		}
		for _, interval := range block.Intervals {
			if interval.GoalID == nil || *interval.GoalID == "" {
				continue
			}
			minutes := nonNegative(interval.DurationMinutes)
			t.BlockMinutes += minutes
			goalMinutes[*interval.GoalID] += minutes
			if interval.TaskID != nil && *interval.TaskID != "" {
				consumed[*interval.TaskID] = struct{}{}
			}
		}
	}

	for _, checkin := range in.Checkins {
		if checkin.GoalID == nil || *checkin.GoalID == "" || !in.Window.Contains(checkin.Date) {
			continue
		}
		minutes := nonNegative(checkin.ValueMin)
		t.HabitMinutes += minutes
		goalMinutes[*checkin.GoalID] += minutes
	}

	units := resolveTasks(in.Tasks, in.Window, consumed, s)
	t.TasksGoalAligned = len(units)

	ratingSum := 0
	for _, unit := range units {
		ratingSum += unit.rating

		switch unit.disposition {
		case consumedByBlock:
			// Already counted through its block interval.
		case standaloneTask:
			t.TaskMinutes += unit.minutes
			mindful := unit.rating >= s.MindfulThreshold
			if mindful {
				t.MindfulTaskCount++
				t.MindfulMinutes += unit.minutes
			}
			share := unit.minutes / float64(len(unit.goalIDs))
			for _, goalID := range unit.goalIDs {
				goalMinutes[goalID] += share
				if mindful {
					goalMindful[goalID] += share
				}
			}
		}
	}

	raw := t.BlockMinutes + t.HabitMinutes + t.TaskMinutes
	t.TotalGoalAlignedMinutes = math.Min(MinutesPerDay, raw)
	t.Score24, t.ScorePercentage = scores(t.TotalGoalAlignedMinutes)
	t.GoalBreakdown = breakdown(in.Goals, goalMinutes, goalMindful, raw, t.TotalGoalAlignedMinutes)

	t.AverageMindfulRating = float64(s.DefaultMindfulRating)
	if len(units) > 0 {
		t.AverageMindfulRating = float64(ratingSum) / float64(len(units))
	}
	t.AverageMindfulRating = clamp(round1(t.AverageMindfulRating), 1, 5)

	return t
}

// resolveTasks keeps the in-window goal-tagged tasks, substitutes the
// duration and rating defaults and decides which path accounts for each task.
func resolveTasks(tasks []db.Task, w DayWindow, consumed map[string]struct{}, s Settings) []taskUnit {
	units := make([]taskUnit, 0, len(tasks))
	for _, task := range tasks {
		if task.CompletedAt == nil || !w.Contains(*task.CompletedAt) {
			continue
		}
		goalIDs := uniqueGoalIDs(task.GoalIDs)
		if len(goalIDs) == 0 {
			continue
		}

		unit := taskUnit{
			goalIDs:     goalIDs,
			minutes:     s.DefaultTaskMinutes,
			rating:      s.DefaultMindfulRating,
			disposition: standaloneTask,
		}
		if task.DurationMinutes != nil {
			unit.minutes = nonNegative(*task.DurationMinutes)
		}
		if task.MindfulRating != nil {
			unit.rating = clampInt(*task.MindfulRating, 1, 5)
		}
		if _, ok := consumed[task.ID]; ok {
			unit.disposition = consumedByBlock
		}
		units = append(units, unit)
	}
	return units
}

func scores(totalMinutes float64) (score24, percentage float64) {
	if totalMinutes <= 0 {
		return 0, 0
	}
	score24 = clamp(round1(totalMinutes/60), 0, 24)
	percentage = clamp(round1(score24/24*100), 0, 100)
	return score24, percentage
}

// breakdown builds the per-goal entries. When raw exceeds the clamped total,
// every entry is scaled by total/raw so the entries still add up to the day.
func breakdown(goals []db.Goal, minutes, mindful map[string]float64, raw, total float64) []db.GoalBreakdown {
	scale := 1.0
	if raw > total && raw > 0 {
		scale = total / raw
	}

	byID := make(map[string]db.Goal, len(goals))
	for _, goal := range goals {
		byID[goal.ID] = goal
	}

	out := make([]db.GoalBreakdown, 0, len(minutes))
	for goalID, m := range minutes {
		goal, ok := byID[goalID]
		if !ok || m <= 0 {
			continue
		}
		m *= scale
		entry := db.GoalBreakdown{
			GoalID:         goalID,
			Name:           goal.Name,
			Color:          goal.Color,
			Minutes:        round1(m),
			MindfulMinutes: round1(mindful[goalID] * scale),
		}
		if total > 0 {
			entry.PercentageOfDay = round1(m / total * 100)
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].GoalID < out[j].GoalID
	})
	return out
}

func uniqueGoalIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
