package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

// ListActiveGoals returns the user's active goals, highest priority first.
func (s *Store) ListActiveGoals(ctx context.Context, userID string) ([]db.Goal, error) {
	var goals []db.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority ASC, name ASC").
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("query active goals: %w", err)
	}
	return goals, nil
}

// FindCompletedTasks returns tasks completed in [from, to) that carry at least one goal.
func (s *Store) FindCompletedTasks(ctx context.Context, userID string, from, to time.Time) ([]db.Task, error) {
	var tasks []db.Task
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Where("jsonb_array_length(goal_ids) > 0").
		Order("completed_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query completed tasks: %w", err)
	}
	return tasks, nil
}

// FindBlocks returns the scheduled blocks dated in [from, to) with their intervals.
func (s *Store) FindBlocks(ctx context.Context, userID string, from, to time.Time) ([]db.ScheduledBlock, error) {
	var blocks []db.ScheduledBlock
	err := s.db.WithContext(ctx).
		Preload("Intervals").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("query scheduled blocks: %w", err)
	}
	return blocks, nil
}

// FindCheckins returns goal-tagged habit check-ins dated in [from, to).
func (s *Store) FindCheckins(ctx context.Context, userID string, from, to time.Time) ([]db.HabitCheckin, error) {
	var checkins []db.HabitCheckin
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ? AND goal_id IS NOT NULL", userID, from, to).
		Order("date ASC").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("query habit checkins: %w", err)
	}
	return checkins, nil
}
