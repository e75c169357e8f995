package alignment

import (
	"context"
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

// GoalDirectory lists the goals a user currently pursues.
type GoalDirectory interface {
	ListActiveGoals(ctx context.Context, userID string) ([]db.Goal, error)
}

// TaskLedger returns completed, goal-tagged tasks with completedAt in [from, to).
type TaskLedger interface {
	FindCompletedTasks(ctx context.Context, userID string, from, to time.Time) ([]db.Task, error)
}

// BlockLedger returns scheduled blocks, intervals loaded, dated in [from, to).
type BlockLedger interface {
	FindBlocks(ctx context.Context, userID string, from, to time.Time) ([]db.ScheduledBlock, error)
}

// CheckinLedger returns goal-tagged habit check-ins dated in [from, to).
type CheckinLedger interface {
	FindCheckins(ctx context.Context, userID string, from, to time.Time) ([]db.HabitCheckin, error)
}

// DayRecordStore persists one GoalAlignedDay per user and calendar day.
// GetRecord, LatestRecord and LatestRecordBefore return (nil, nil) when
// nothing is stored.
type DayRecordStore interface {
	GetRecord(ctx context.Context, userID, day string) (*db.GoalAlignedDay, error)
	UpsertRecord(ctx context.Context, record *db.GoalAlignedDay) error
	ListRecords(ctx context.Context, userID, fromDay, toDay string) ([]db.GoalAlignedDay, error)
	LatestRecord(ctx context.Context, userID string) (*db.GoalAlignedDay, error)
	LatestRecordBefore(ctx context.Context, userID, day string) (*db.GoalAlignedDay, error)
}

// Sources bundles the collaborators the engine reads from and writes to.
type Sources struct {
	Goals    GoalDirectory
	Tasks    TaskLedger
	Blocks   BlockLedger
	Checkins CheckinLedger
	Records  DayRecordStore
}
