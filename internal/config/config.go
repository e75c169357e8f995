// Package config loads the alignment engine settings and the database
// location from an optional alignment.yaml file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

// Config is the service configuration on top of what microservice-commons
// already reads for the HTTP server.
type Config struct {
	UTCOffsetMinutes       int
	DefaultTaskMinutes     float64
	DefaultMindfulRating   int
	MindfulRatingThreshold int
	MinQualifyingMinutes   float64
	DefaultTargetHours     float64

	RecomputePerMinute int
	RecomputeBurst     int

	GoalDirectoryURL string

	Database DatabaseConfig
}

// DatabaseConfig holds the Postgres connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the connection string understood by the pgx driver.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Alignment converts the loaded values into engine settings.
func (c *Config) Alignment() alignment.Settings {
	return alignment.Settings{
		Offset:               time.Duration(c.UTCOffsetMinutes) * time.Minute,
		DefaultTaskMinutes:   c.DefaultTaskMinutes,
		DefaultMindfulRating: c.DefaultMindfulRating,
		MindfulThreshold:     c.MindfulRatingThreshold,
		MinQualifyingMinutes: c.MinQualifyingMinutes,
		DefaultTargetHours:   c.DefaultTargetHours,
	}
}

// Load reads alignment.yaml from dir (if present) and overlays ALIGNMENT_*
// and DB_* environment variables.
func Load(dir string) (*Config, error) {
	defaults := alignment.DefaultSettings()

	v := viper.New()
	v.SetConfigName("alignment")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("ALIGNMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("engine.utc_offset_minutes", int(defaults.Offset/time.Minute))
	v.SetDefault("engine.default_task_minutes", defaults.DefaultTaskMinutes)
	v.SetDefault("engine.default_mindful_rating", defaults.DefaultMindfulRating)
	v.SetDefault("engine.mindful_rating_threshold", defaults.MindfulThreshold)
	v.SetDefault("engine.min_qualifying_minutes", defaults.MinQualifyingMinutes)
	v.SetDefault("engine.default_target_hours", defaults.DefaultTargetHours)
	v.SetDefault("api.recompute_per_minute", 30)
	v.SetDefault("api.recompute_burst", 5)
	v.SetDefault("goal_directory.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "alignment")
	v.SetDefault("database.sslmode", "disable")

	// Database settings follow the DB_* names used by the other services.
	for key, env := range map[string]string{
		"database.host":      "DB_HOST",
		"database.port":      "DB_PORT",
		"database.user":      "DB_USER",
		"database.password":  "DB_PASSWORD",
		"database.name":      "DB_NAME",
		"database.sslmode":   "DB_SSLMODE",
		"goal_directory.url": "GOAL_DIRECTORY_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if dir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading alignment.yaml: %w", err)
			}
		}
	}

	cfg := &Config{
		UTCOffsetMinutes:       v.GetInt("engine.utc_offset_minutes"),
		DefaultTaskMinutes:     v.GetFloat64("engine.default_task_minutes"),
		DefaultMindfulRating:   v.GetInt("engine.default_mindful_rating"),
		MindfulRatingThreshold: v.GetInt("engine.mindful_rating_threshold"),
		MinQualifyingMinutes:   v.GetFloat64("engine.min_qualifying_minutes"),
		DefaultTargetHours:     v.GetFloat64("engine.default_target_hours"),
		RecomputePerMinute:     v.GetInt("api.recompute_per_minute"),
		RecomputeBurst:         v.GetInt("api.recompute_burst"),
		GoalDirectoryURL:       v.GetString("goal_directory.url"),
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (c *Config) Validate() error {
	if c.UTCOffsetMinutes <= -24*60 || c.UTCOffsetMinutes >= 24*60 {
		return fmt.Errorf("utc offset %d minutes out of range", c.UTCOffsetMinutes)
	}
	if c.DefaultTaskMinutes < 0 {
		return errors.New("default task minutes must not be negative")
	}
	if c.DefaultMindfulRating < 1 || c.DefaultMindfulRating > 5 {
		return fmt.Errorf("default mindful rating %d outside 1..5", c.DefaultMindfulRating)
	}
	if c.MindfulRatingThreshold < 1 || c.MindfulRatingThreshold > 5 {
		return fmt.Errorf("mindful rating threshold %d outside 1..5", c.MindfulRatingThreshold)
	}
	if c.MinQualifyingMinutes < 0 || c.MinQualifyingMinutes > 1440 {
		return fmt.Errorf("min qualifying minutes %.1f outside 0..1440", c.MinQualifyingMinutes)
	}
	if c.DefaultTargetHours <= 0 || c.DefaultTargetHours > 24 {
		return fmt.Errorf("default target hours %.1f outside (0, 24]", c.DefaultTargetHours)
	}
	if c.RecomputePerMinute <= 0 || c.RecomputeBurst <= 0 {
		return errors.New("recompute rate limit must be positive")
	}
	return nil
}
