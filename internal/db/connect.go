package db

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres database behind dsn and migrates the service tables.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := conn.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("database ready", "tables", len(AllModels()))
	return conn, nil
}

// IsValidHabitCadence reports whether cadence is one of the known values.
func IsValidHabitCadence(cadence string) bool {
	validCadences := []string{HabitCadenceNone, HabitCadenceDaily, HabitCadenceWeekly, HabitCadenceMonthly}
	for _, valid := range validCadences {
		if cadence == valid {
			return true
		}
	}
	return false
}
