package db

import (
	"time"
)

// Goal is a long-running objective a user spends time on
type Goal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	UserID      string    `json:"userId" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Color       string    `json:"color"`       // Hex color used by the UI
	Category    string    `json:"category"`    // Free-form grouping (health, career...)
	TargetHours float64   `json:"targetHours"` // Weekly target set by the user
	Priority    int       `json:"priority"`    // 1 = highest
	IsActive    bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task is a completed activity logged by the user and tagged with zero or more goals
type Task struct {
	ID              string     `json:"id" gorm:"primaryKey;type:text"`
	UserID          string     `json:"userId" gorm:"not null;index"`
	Title           string     `json:"title" gorm:"not null"`
	GoalIDs         []string   `json:"goalIds" gorm:"serializer:json;type:jsonb"`
	CompletedAt     *time.Time `json:"completedAt" gorm:"index"` // nil while still open
	MindfulRating   *int       `json:"mindfulRating"`            // 1..5, nil when not rated
	DurationMinutes *float64   `json:"durationMinutes"`          // nil when the user did not time it
	IsHabit         bool       `json:"isHabit"`
	HabitCadence    string     `json:"habitCadence"` // none, daily, weekly, monthly
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ScheduledBlock is the legacy per-day container of planned time intervals
type ScheduledBlock struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"userId" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null;index"` // Local midnight of the block's day, stored in UTC
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Intervals []BlockInterval `json:"intervals" gorm:"foreignKey:BlockID"`
}

// BlockInterval is one slot inside a ScheduledBlock
type BlockInterval struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	BlockID         string    `json:"blockId" gorm:"not null;index"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	GoalID          *string   `json:"goalId"` // Only intervals with a goal count towards alignment
	TaskID          *string   `json:"taskId"` // Set when the slot was filled by a logged task
}

// HabitCheckin is the legacy discrete habit event
type HabitCheckin struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"userId" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	HabitName string    `json:"habitName" gorm:"not null"`
	ValueMin  float64   `json:"valueMin"`
	GoalID    *string   `json:"goalId"`
	Quality   *int      `json:"quality"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoalAlignedDay is the materialized daily alignment result (one per user per day)
type GoalAlignedDay struct {
	ID                      string          `json:"id" gorm:"primaryKey;type:text"`
	UserID                  string          `json:"userId" gorm:"not null;uniqueIndex:idx_goal_aligned_user_day,priority:1"`
	Day                     string          `json:"date" gorm:"not null;uniqueIndex:idx_goal_aligned_user_day,priority:2"` // YYYY-MM-DD
	TasksGoalAligned        int             `json:"tasksGoalAligned"`
	BlockMinutes            float64         `json:"blockMinutes"`
	HabitMinutes            float64         `json:"habitMinutes"`
	TaskMinutes             float64         `json:"taskMinutes"`
	TotalGoalAlignedMinutes float64         `json:"totalGoalAlignedMinutes"` // Clamped to 1440
	Score24                 float64         `json:"score24"`
	ScorePercentage         float64         `json:"scorePercentage"`
	GoalBreakdown           []GoalBreakdown `json:"goalBreakdown" gorm:"serializer:json;type:jsonb"`
	MindfulTaskCount        int             `json:"mindfulTaskCount"`
	MindfulMinutes          float64         `json:"mindfulMinutes"`
	AverageMindfulRating    float64         `json:"averageMindfulRating"`
	CurrentStreak           int             `json:"currentStreak"`
	LongestStreak           int             `json:"longestStreak"`
	TargetHours             float64         `json:"targetHours"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// GoalBreakdown is one goal's share of an aligned day
type GoalBreakdown struct {
	GoalID          string  `json:"goalId"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	Minutes         float64 `json:"minutes"`
	MindfulMinutes  float64 `json:"mindfulMinutes"`
	PercentageOfDay float64 `json:"percentageOfDay"`
}

// HabitCadence constants
const (
	HabitCadenceNone    = "none"
	HabitCadenceDaily   = "daily"
	HabitCadenceWeekly  = "weekly"
	HabitCadenceMonthly = "monthly"
)

// AllModels lists every table managed by the service, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&Goal{},
		&Task{},
		&ScheduledBlock{},
		&BlockInterval{},
		&HabitCheckin{},
		&GoalAlignedDay{},
	}
}
