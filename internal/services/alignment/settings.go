package alignment

import "time"

// Settings are the tunables of the alignment engine. Every fallback value the
// engine substitutes for missing data lives here.
type Settings struct {
	Offset               time.Duration // Fixed UTC offset defining calendar days
	DefaultTaskMinutes   float64       // Used when a task has no durationMinutes
	DefaultMindfulRating int           // Used when a task has no mindfulRating
	MindfulThreshold     int           // Tasks rated at or above this are mindful
	MinQualifyingMinutes float64       // Streak threshold on top of "more than zero"
	DefaultTargetHours   float64       // targetHours of a freshly created day record
}

// DefaultSettings returns the production defaults (IST, 25-minute tasks).
func DefaultSettings() Settings {
	return Settings{
		Offset:               5*time.Hour + 30*time.Minute,
		DefaultTaskMinutes:   25,
		DefaultMindfulRating: 3,
		MindfulThreshold:     4,
		MinQualifyingMinutes: 0,
		DefaultTargetHours:   8,
	}
}
