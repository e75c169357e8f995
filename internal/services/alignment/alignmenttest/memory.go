// Package alignmenttest provides an in-memory implementation of every
// collaborator of the alignment service for tests.
package alignmenttest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

// Memory keeps goals, activity and day records in maps. Set one of the
// Fail* fields to make the matching query return that error.
type Memory struct {
	mu sync.Mutex

	Goals    []db.Goal
	Tasks    []db.Task
	Blocks   []db.ScheduledBlock
	Checkins []db.HabitCheckin

	records map[string]db.GoalAlignedDay
	Upserts int

	FailGoals    error
	FailTasks    error
	FailBlocks   error
	FailCheckins error
	FailRecords  error
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]db.GoalAlignedDay)}
}

// Sources wires m into every slot of alignment.Sources.
func (m *Memory) Sources() alignment.Sources {
	return alignment.Sources{Goals: m, Tasks: m, Blocks: m, Checkins: m, Records: m}
}

func key(userID, day string) string {
	return userID + "|" + day
}

func (m *Memory) ListActiveGoals(_ context.Context, userID string) ([]db.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGoals != nil {
		return nil, m.FailGoals
	}
	var out []db.Goal
	for _, goal := range m.Goals {
		if goal.UserID == userID && goal.IsActive {
			out = append(out, goal)
		}
	}
	return out, nil
}

func (m *Memory) FindCompletedTasks(_ context.Context, userID string, from, to time.Time) ([]db.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTasks != nil {
		return nil, m.FailTasks
	}
	var out []db.Task
	for _, task := range m.Tasks {
		if task.UserID != userID || task.CompletedAt == nil || len(task.GoalIDs) == 0 {
			continue
		}
		if task.CompletedAt.Before(from) || !task.CompletedAt.Before(to) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *Memory) FindBlocks(_ context.Context, userID string, from, to time.Time) ([]db.ScheduledBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailBlocks != nil {
		return nil, m.FailBlocks
	}
	var out []db.ScheduledBlock
	for _, block := range m.Blocks {
		if block.UserID == userID && !block.Date.Before(from) && block.Date.Before(to) {
			out = append(out, block)
		}
	}
	return out, nil
}

func (m *Memory) FindCheckins(_ context.Context, userID string, from, to time.Time) ([]db.HabitCheckin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCheckins != nil {
		return nil, m.FailCheckins
	}
	var out []db.HabitCheckin
	for _, checkin := range m.Checkins {
		if checkin.UserID != userID || checkin.GoalID == nil {
			continue
		}
		if !checkin.Date.Before(from) && checkin.Date.Before(to) {
			out = append(out, checkin)
		}
	}
	return out, nil
}

func (m *Memory) GetRecord(_ context.Context, userID, day string) (*db.GoalAlignedDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecords != nil {
		return nil, m.FailRecords
	}
	record, ok := m.records[key(userID, day)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) UpsertRecord(_ context.Context, record *db.GoalAlignedDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecords != nil {
		return m.FailRecords
	}
	stored := *record
	if current, ok := m.records[key(record.UserID, record.Day)]; ok {
		stored.ID = current.ID
		stored.CreatedAt = current.CreatedAt
	}
	m.records[key(record.UserID, record.Day)] = stored
	m.Upserts++
	return nil
}

func (m *Memory) ListRecords(_ context.Context, userID, fromDay, toDay string) ([]db.GoalAlignedDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecords != nil {
		return nil, m.FailRecords
	}
	var out []db.GoalAlignedDay
	for _, record := range m.records {
		if record.UserID == userID && record.Day >= fromDay && record.Day < toDay {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (m *Memory) LatestRecord(_ context.Context, userID string) (*db.GoalAlignedDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecords != nil {
		return nil, m.FailRecords
	}
	var latest *db.GoalAlignedDay
	for _, record := range m.records {
		if record.UserID != userID {
			continue
		}
		if latest == nil || record.Day > latest.Day {
			r := record
			latest = &r
		}
	}
	return latest, nil
}

func (m *Memory) LatestRecordBefore(_ context.Context, userID, before string) (*db.GoalAlignedDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRecords != nil {
		return nil, m.FailRecords
	}
	var latest *db.GoalAlignedDay
	for _, record := range m.records {
		if record.UserID != userID || record.Day >= before {
			continue
		}
		if latest == nil || record.Day > latest.Day {
			r := record
			latest = &r
		}
	}
	return latest, nil
}

// PutRecord stores record as if a previous computation had written it.
func (m *Memory) PutRecord(record db.GoalAlignedDay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key(record.UserID, record.Day)] = record
}

// RecordCount returns the number of stored day records.
func (m *Memory) RecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
