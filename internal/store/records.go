package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

// recordColumns are overwritten when a day is recomputed; id and created_at survive.
var recordColumns = []string{
	"tasks_goal_aligned",
	"block_minutes",
	"habit_minutes",
	"task_minutes",
	"total_goal_aligned_minutes",
	"score24",
	"score_percentage",
	"goal_breakdown",
	"mindful_task_count",
	"mindful_minutes",
	"average_mindful_rating",
	"current_streak",
	"longest_streak",
	"target_hours",
	"updated_at",
}

// GetRecord returns the stored record of userID for day, or nil.
func (s *Store) GetRecord(ctx context.Context, userID, day string) (*db.GoalAlignedDay, error) {
	var rows []db.GoalAlignedDay
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query day record: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// UpsertRecord inserts record or replaces every computed column of the
// existing (user_id, day) row in a single statement.
func (s *Store) UpsertRecord(ctx context.Context, record *db.GoalAlignedDay) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns(recordColumns),
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("upsert day record: %w", err)
	}
	return nil
}

// ListRecords returns userID's records with fromDay <= day < toDay, oldest first.
func (s *Store) ListRecords(ctx context.Context, userID, fromDay, toDay string) ([]db.GoalAlignedDay, error) {
	var rows []db.GoalAlignedDay
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day >= ? AND day < ?", userID, fromDay, toDay).
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query day records: %w", err)
	}
	return rows, nil
}

// LatestRecord returns userID's most recent record, or nil.
func (s *Store) LatestRecord(ctx context.Context, userID string) (*db.GoalAlignedDay, error) {
	var rows []db.GoalAlignedDay
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query latest day record: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// LatestRecordBefore returns userID's most recent record with day < before, or nil.
func (s *Store) LatestRecordBefore(ctx context.Context, userID, before string) (*db.GoalAlignedDay, error) {
	var rows []db.GoalAlignedDay
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day < ?", userID, before).
		Order("day DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query earlier day record: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
