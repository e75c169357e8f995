// Package store implements the alignment engine's goal directory, activity
// ledgers and day record store on top of Postgres.
package store

import (
	"gorm.io/gorm"

	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

// Store reads the activity tables and owns the goal_aligned_days table.
type Store struct {
	db *gorm.DB
}

func New(database *gorm.DB) *Store {
	return &Store{db: database}
}

// Sources wires the store into every slot of alignment.Sources.
func (s *Store) Sources() alignment.Sources {
	return alignment.Sources{
		Goals:    s,
		Tasks:    s,
		Blocks:   s,
		Checkins: s,
		Records:  s,
	}
}

var (
	_ alignment.GoalDirectory  = (*Store)(nil)
	_ alignment.TaskLedger     = (*Store)(nil)
	_ alignment.BlockLedger    = (*Store)(nil)
	_ alignment.CheckinLedger  = (*Store)(nil)
	_ alignment.DayRecordStore = (*Store)(nil)
)
