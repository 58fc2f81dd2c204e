// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the reminder scheduler, the time-slot table, and the HTTP surface.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/timeslot"
)

// Config holds all application configuration
type Config struct {
	// Telegram Bot Configuration
	TelegramToken string

	// Semester Configuration
	SemesterStart    time.Time       // first day of academic week 1
	TimeSlots        []timeslot.Slot // period table; empty = built-in default
	DefaultWeekStart int             // applied to fragments without a week token
	DefaultWeekEnd   int

	// Reminder Configuration
	LeadMinutes        int                // minutes before class start to fire (default: 10)
	TickInterval       time.Duration      // scheduler tick interval (default: 60s)
	DailyDigestTime    schedule.ClockTime // once-daily digest instant (default: 23:00)
	DailyDigestEnabled bool               // default for new users

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Observability
	SentryDSN string // empty = Sentry disabled

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Data directory for SQLite database
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	semesterStart, err := time.ParseInLocation("2006-01-02", getEnv("SEMESTER_START", ""), time.Local)
	if err != nil {
		return nil, fmt.Errorf("SEMESTER_START must be a YYYY-MM-DD date: %w", err)
	}

	slots, err := ParseSlots(getEnv("TIME_SLOTS", ""))
	if err != nil {
		return nil, fmt.Errorf("TIME_SLOTS is invalid: %w", err)
	}

	digestTime, err := schedule.ParseClockTime(getEnv("DAILY_DIGEST_TIME", "23:00"))
	if err != nil {
		return nil, fmt.Errorf("DAILY_DIGEST_TIME must be HH:MM: %w", err)
	}

	cfg := &Config{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		SemesterStart:    semesterStart,
		TimeSlots:        slots,
		DefaultWeekStart: getIntEnv("DEFAULT_WEEK_START", schedule.DefaultWeekStart),
		DefaultWeekEnd:   getIntEnv("DEFAULT_WEEK_END", schedule.DefaultWeekEnd),

		LeadMinutes:        getIntEnv("REMINDER_LEAD_MINUTES", 10),
		TickInterval:       getDurationEnv("TICK_INTERVAL", 60*time.Second),
		DailyDigestTime:    digestTime,
		DailyDigestEnabled: getBoolEnv("DAILY_DIGEST_ENABLED", true),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir: getEnv("DATA_DIR", getDefaultDataDir()),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is required"))
	}
	if c.SemesterStart.IsZero() {
		errs = append(errs, errors.New("SEMESTER_START is required"))
	}
	if c.LeadMinutes <= 0 {
		errs = append(errs, fmt.Errorf("REMINDER_LEAD_MINUTES must be positive, got %d", c.LeadMinutes))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("TICK_INTERVAL must be positive, got %v", c.TickInterval))
	}
	if c.DefaultWeekStart < 1 || c.DefaultWeekEnd < c.DefaultWeekStart {
		errs = append(errs, fmt.Errorf("invalid default week range %d-%d", c.DefaultWeekStart, c.DefaultWeekEnd))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Table builds the period table from configuration, falling back to the
// built-in default when TIME_SLOTS is unset. An invalid table is a fatal
// startup error; the scheduler never starts without one.
func (c *Config) Table() (*timeslot.Table, error) {
	if len(c.TimeSlots) == 0 {
		return timeslot.Default(), nil
	}
	return timeslot.New(c.TimeSlots)
}

// DefaultSettings returns the reminder settings applied to users on their
// first successful parse.
func (c *Config) DefaultSettings() schedule.ReminderSettings {
	return schedule.ReminderSettings{
		Enabled:            true,
		LeadMinutes:        c.LeadMinutes,
		DailyDigestEnabled: c.DailyDigestEnabled,
		DailyDigestTime:    c.DailyDigestTime,
	}
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "schedules.db")
}
