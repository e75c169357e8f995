package goals

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
)

/* ------------------------------------------------------------------ */
/*  Logger                                                            */
/* ------------------------------------------------------------------ */

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "GoalService"),
)

// ErrGoalNotFound is returned when the goal does not exist or belongs to someone else.
var ErrGoalNotFound = errors.New("goal not found")

// ErrInvalidGoal is returned when the goal fails validation.
var ErrInvalidGoal = errors.New("invalid goal")

/* ------------------------------------------------------------------ */
/*  Service definition & constructor                                  */
/* ------------------------------------------------------------------ */

type GoalService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGoalService(database *gorm.DB) *GoalService {
	return &GoalService{db: database, now: time.Now}
}

/* ------------------------------------------------------------------ */
/*  DTOs                                                              */
/* ------------------------------------------------------------------ */

type CreateGoalInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Category    string  `json:"category"`
	TargetHours float64 `json:"targetHours"`
	Priority    int     `json:"priority"`
}

// UpdateGoalInput carries the fields to change; nil means unchanged.
type UpdateGoalInput struct {
	Name        *string  `json:"name"`
	Color       *string  `json:"color"`
	Category    *string  `json:"category"`
	TargetHours *float64 `json:"targetHours"`
	Priority    *int     `json:"priority"`
	IsActive    *bool    `json:"isActive"`
}

/* ------------------------------------------------------------------ */
/*  CRUD – Goal                                                       */
/* ------------------------------------------------------------------ */

func (s *GoalService) CreateGoal(
	ctx context.Context,
	in *CreateGoalInput,
	userID string,
) (*db.Goal, error) {
	log.Info("create-goal:start", "userID", userID, "name", in.Name)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidGoal)
	}
	if in.TargetHours < 0 {
		return nil, fmt.Errorf("%w: target hours must not be negative", ErrInvalidGoal)
	}

	now := s.now().UTC()
	goal := &db.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Color:       in.Color,
		Category:    in.Category,
		TargetHours: in.TargetHours,
		Priority:    in.Priority,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		log.Error("create-goal:db-insert-failed", "err", err)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	log.Info("create-goal:success", "goalID", goal.ID)
	return goal, nil
}

func (s *GoalService) GetGoal(ctx context.Context, id, userID string) (*db.Goal, error) {
	log.Debug("get-goal", "goalID", id, "userID", userID)

	var goal db.Goal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		log.Error("get-goal:query-failed", "err", err)
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	return &goal, nil
}

// ListGoals returns the user's goals. Inactive goals are included only when
// includeInactive is set.
func (s *GoalService) ListGoals(ctx context.Context, userID string, includeInactive bool) ([]db.Goal, error) {
	log.Debug("list-goals", "userID", userID, "includeInactive", includeInactive)

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var goals []db.Goal
	if err := query.Order("priority ASC, name ASC").Find(&goals).Error; err != nil {
		log.Error("list-goals:query-failed", "err", err)
		return nil, fmt.Errorf("failed to retrieve goals: %w", err)
	}

	log.Info("list-goals:success", "count", len(goals))
	return goals, nil
}

func (s *GoalService) UpdateGoal(
	ctx context.Context,
	id string,
	updates *UpdateGoalInput,
	userID string,
) (*db.Goal, error) {
	log.Info("update-goal:start", "goalID", id, "userID", userID)

	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidGoal)
		}
		goal.Name = name
	}
	if updates.Color != nil {
		goal.Color = *updates.Color
	}
	if updates.Category != nil {
		goal.Category = *updates.Category
	}
	if updates.TargetHours != nil {
		if *updates.TargetHours < 0 {
			return nil, fmt.Errorf("%w: target hours must not be negative", ErrInvalidGoal)
		}
		goal.TargetHours = *updates.TargetHours
	}
	if updates.Priority != nil {
		goal.Priority = *updates.Priority
	}
	if updates.IsActive != nil {
		goal.IsActive = *updates.IsActive
	}
	goal.UpdatedAt = s.now().UTC()

	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		log.Error("update-goal:db-update-failed", "err", err)
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	log.Info("update-goal:success", "goalID", id)
	return goal, nil
}

// DeactivateGoal hides a goal from the alignment engine. Past day records keep
// their breakdown entries; only new computations stop attributing to it.
func (s *GoalService) DeactivateGoal(ctx context.Context, id, userID string) error {
	log.Info("deactivate-goal:start", "goalID", id, "userID", userID)

	result := s.db.WithContext(ctx).
		Model(&db.Goal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": s.now().UTC()})
	if result.Error != nil {
		log.Error("deactivate-goal:db-update-failed", "err", result.Error)
		return fmt.Errorf("failed to deactivate goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Warn("deactivate-goal:not-found", "goalID", id)
		return ErrGoalNotFound
	}

	log.Info("deactivate-goal:success", "goalID", id)
	return nil
}
