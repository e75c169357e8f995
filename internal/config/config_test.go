package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("GOAL_DIRECTORY_URL", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, alignment.DefaultSettings(), cfg.Alignment())
	assert.Equal(t, 330, cfg.UTCOffsetMinutes)
	assert.Equal(t, 30, cfg.RecomputePerMinute)
	assert.Equal(t, 5, cfg.RecomputeBurst)
	assert.Empty(t, cfg.GoalDirectoryURL)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
engine:
  utc_offset_minutes: 60
  min_qualifying_minutes: 30
  default_task_minutes: 20
api:
  recompute_burst: 2
database:
  host: db.internal
  name: lifestyle
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alignment.yaml"), yaml, 0o600))

	t.Setenv("ALIGNMENT_ENGINE_DEFAULT_TASK_MINUTES", "15")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("GOAL_DIRECTORY_URL", "http://goals:8080")

	cfg, err := Load(dir)
	require.NoError(t, err)

	settings := cfg.Alignment()
	assert.Equal(t, time.Hour, settings.Offset)
	assert.Equal(t, 30.0, settings.MinQualifyingMinutes)
	assert.Equal(t, 15.0, settings.DefaultTaskMinutes)
	assert.Equal(t, 2, cfg.RecomputeBurst)
	assert.Equal(t, "lifestyle", cfg.Database.Name)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "http://goals:8080", cfg.GoalDirectoryURL)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("ALIGNMENT_ENGINE_MINDFUL_RATING_THRESHOLD", "7")

	_, err := Load("")
	assert.ErrorContains(t, err, "mindful rating threshold")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alignment.yaml"), []byte("engine: [unclosed"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "alignment.yaml")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "svc", Password: "p@ss", Name: "alignment", SSLMode: "disable"}
	assert.Equal(t, "postgres://svc:p%40ss@db:5432/alignment?sslmode=disable", d.DSN())
}
