package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

/* ------------------------------------------------------------------ */
/*  Logger                                                            */
/* ------------------------------------------------------------------ */

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "ActivityService"),
)

// ErrInvalidActivity is returned when submitted activity fails validation.
var ErrInvalidActivity = errors.New("invalid activity")

// Recomputer refreshes a stored day record after its activity changed.
type Recomputer interface {
	ComputeDailyMetrics(ctx context.Context, userID, date string) (*db.GoalAlignedDay, error)
}

/* ------------------------------------------------------------------ */
/*  Service definition & constructor                                  */
/* ------------------------------------------------------------------ */

type ActivityService struct {
	db         *gorm.DB
	offset     time.Duration
	recomputer Recomputer
	now        func() time.Time
}

// NewActivityService writes activity through database. recomputer may be nil,
// in which case day records are only refreshed when read.
func NewActivityService(database *gorm.DB, offset time.Duration, recomputer Recomputer) *ActivityService {
	return &ActivityService{
		db:         database,
		offset:     offset,
		recomputer: recomputer,
		now:        time.Now,
	}
}

/* ------------------------------------------------------------------ */
/*  DTOs                                                              */
/* ------------------------------------------------------------------ */

type LogTaskInput struct {
	Title           string     `json:"title"`
	GoalIDs         []string   `json:"goalIds"`
	CompletedAt     *time.Time `json:"completedAt"`
	MindfulRating   *int       `json:"mindfulRating"`
	DurationMinutes *float64   `json:"durationMinutes"`
	IsHabit         bool       `json:"isHabit"`
	HabitCadence    string     `json:"habitCadence"`
}

type IntervalInput struct {
	StartTime       time.Time `json:"startTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	GoalID          *string   `json:"goalId"`
	TaskID          *string   `json:"taskId"`
}

type AddBlockInput struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	Intervals []IntervalInput `json:"intervals"`
}

type LogCheckinInput struct {
	HabitName string  `json:"habitName"`
	Date      string  `json:"date"` // YYYY-MM-DD or RFC3339; empty means now
	ValueMin  float64 `json:"valueMin"`
	GoalID    *string `json:"goalId"`
	Quality   *int    `json:"quality"`
}

/* ------------------------------------------------------------------ */
/*  Tasks                                                             */
/* ------------------------------------------------------------------ */

// LogTask stores a task. A task without completedAt is open and does not
// count towards any day until it is completed.
func (s *ActivityService) LogTask(ctx context.Context, in *LogTaskInput, userID string) (*db.Task, error) {
	log.Info("log-task:start", "userID", userID, "title", in.Title)

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidActivity)
	}
	if in.MindfulRating != nil && (*in.MindfulRating < 1 || *in.MindfulRating > 5) {
		return nil, fmt.Errorf("%w: mindful rating must be between 1 and 5", ErrInvalidActivity)
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidActivity)
	}
	cadence := in.HabitCadence
	if cadence == "" {
		cadence = db.HabitCadenceNone
	}
	if !db.IsValidHabitCadence(cadence) {
		return nil, fmt.Errorf("%w: habit cadence must be none, daily, weekly or monthly", ErrInvalidActivity)
	}

	now := s.now().UTC()
	task := &db.Task{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           strings.TrimSpace(in.Title),
		GoalIDs:         dedupe(in.GoalIDs),
		MindfulRating:   in.MindfulRating,
		DurationMinutes: in.DurationMinutes,
		IsHabit:         in.IsHabit,
		HabitCadence:    cadence,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.CompletedAt != nil {
		completed := in.CompletedAt.UTC()
		task.CompletedAt = &completed
	}

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		log.Error("log-task:db-insert-failed", "err", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.CompletedAt != nil {
		s.refresh(ctx, userID, task.CompletedAt.Format(time.RFC3339))
	}

	log.Info("log-task:success", "taskID", task.ID)
	return task, nil
}

// ListTasksForDay returns every task completed on the given calendar day,
// goal-tagged or not.
func (s *ActivityService) ListTasksForDay(ctx context.Context, userID, date string) ([]db.Task, error) {
	log.Debug("list-tasks-for-day", "userID", userID, "date", date)

	window, err := alignment.ResolveDay(date, s.now(), s.offset)
	if err != nil {
		return nil, err
	}

	var tasks []db.Task
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, window.Start, window.End).
		Order("completed_at ASC").
		Find(&tasks).Error
	if err != nil {
		log.Error("list-tasks-for-day:query-failed", "err", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

/* ------------------------------------------------------------------ */
/*  Legacy sources                                                    */
/* ------------------------------------------------------------------ */

// AddScheduledBlock stores a block for a calendar day together with its intervals.
func (s *ActivityService) AddScheduledBlock(ctx context.Context, in *AddBlockInput, userID string) (*db.ScheduledBlock, error) {
	log.Info("add-block:start", "userID", userID, "date", in.Date, "intervals", len(in.Intervals))

	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidActivity)
	}
	window, err := alignment.ResolveDay(in.Date, s.now(), s.offset)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	block := &db.ScheduledBlock{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      window.Start,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, interval := range in.Intervals {
		if interval.DurationMinutes < 0 {
			return nil, fmt.Errorf("%w: interval duration must not be negative", ErrInvalidActivity)
		}
		block.Intervals = append(block.Intervals, db.BlockInterval{
			ID:              uuid.NewString(),
			BlockID:         block.ID,
			StartTime:       interval.StartTime.UTC(),
			DurationMinutes: interval.DurationMinutes,
			GoalID:          nonEmpty(interval.GoalID),
			TaskID:          nonEmpty(interval.TaskID),
		})
	}

	// Block and intervals are written together.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(block).Error
	})
	if err != nil {
		log.Error("add-block:db-insert-failed", "err", err)
		return nil, fmt.Errorf("failed to create scheduled block: %w", err)
	}

	s.refresh(ctx, userID, window.Date)

	log.Info("add-block:success", "blockID", block.ID)
	return block, nil
}

// LogCheckin stores a habit check-in.
func (s *ActivityService) LogCheckin(ctx context.Context, in *LogCheckinInput, userID string) (*db.HabitCheckin, error) {
	log.Info("log-checkin:start", "userID", userID, "habit", in.HabitName)

	if strings.TrimSpace(in.HabitName) == "" {
		return nil, fmt.Errorf("%w: habit name is required", ErrInvalidActivity)
	}
	if in.ValueMin < 0 {
		return nil, fmt.Errorf("%w: minutes must not be negative", ErrInvalidActivity)
	}
	if in.Quality != nil && (*in.Quality < 1 || *in.Quality > 5) {
		return nil, fmt.Errorf("%w: quality must be between 1 and 5", ErrInvalidActivity)
	}

	date := s.now().UTC()
	if in.Date != "" {
		if instant, err := time.Parse(time.RFC3339, in.Date); err == nil {
			date = instant.UTC()
		} else {
			window, err := alignment.ResolveDay(in.Date, s.now(), s.offset)
			if err != nil {
				return nil, err
			}
			date = window.Start
		}
	}

	checkin := &db.HabitCheckin{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		HabitName: strings.TrimSpace(in.HabitName),
		ValueMin:  in.ValueMin,
		GoalID:    nonEmpty(in.GoalID),
		Quality:   in.Quality,
		CreatedAt: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(checkin).Error; err != nil {
		log.Error("log-checkin:db-insert-failed", "err", err)
		return nil, fmt.Errorf("failed to create habit checkin: %w", err)
	}

	s.refresh(ctx, userID, date.Format(time.RFC3339))

	log.Info("log-checkin:success", "checkinID", checkin.ID)
	return checkin, nil
}

/* ------------------------------------------------------------------ */
/*  Helpers                                                           */
/* ------------------------------------------------------------------ */

// refresh recomputes the affected day. Failures are logged only; the activity
// itself is already stored and the record is rebuilt on the next read.
func (s *ActivityService) refresh(ctx context.Context, userID, date string) {
	if s.recomputer == nil {
		return
	}
	if _, err := s.recomputer.ComputeDailyMetrics(ctx, userID, date); err != nil {
		log.Warn("refresh-day:failed", "userID", userID, "date", date, "err", err)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
