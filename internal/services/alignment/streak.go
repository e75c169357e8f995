package alignment

import "github.com/JorgeSaicoski/alignment-tracker/internal/db"

// Qualifies reports whether a day with totalMinutes of aligned time extends a streak.
func Qualifies(totalMinutes float64, s Settings) bool {
	return totalMinutes > 0 && totalMinutes >= s.MinQualifyingMinutes
}

// ApplyStreak sets day's streak fields. existing is the stored record for the
// same day and earlier the latest stored record before it; either may be nil.
// earlier only extends the run when its Day is previousDay, but its longest
// streak is carried across any gap. The current run only depends on day's
// totals and earlier, so recomputing a day never moves the streak further.
func ApplyStreak(day, existing, earlier *db.GoalAlignedDay, previousDay string, s Settings) {
	contiguous := earlier != nil && earlier.Day == previousDay

	switch {
	case !Qualifies(day.TotalGoalAlignedMinutes, s):
		day.CurrentStreak = 0
	case contiguous && earlier.CurrentStreak > 0:
		day.CurrentStreak = earlier.CurrentStreak + 1
	default:
		day.CurrentStreak = 1
	}

	longest := day.CurrentStreak
	if existing != nil && existing.LongestStreak > longest {
		longest = existing.LongestStreak
	}
	if earlier != nil && earlier.LongestStreak > longest {
		longest = earlier.LongestStreak
	}
	day.LongestStreak = longest
}
