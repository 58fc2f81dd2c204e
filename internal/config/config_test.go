package config

import (
	"testing"
	"time"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("SEMESTER_START", "2024-09-01")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LeadMinutes != 10 {
		t.Errorf("LeadMinutes = %d, want 10", cfg.LeadMinutes)
	}
	if cfg.TickInterval != 60*time.Second {
		t.Errorf("TickInterval = %v, want 60s", cfg.TickInterval)
	}
	if cfg.DailyDigestTime != schedule.NewClockTime(23, 0) {
		t.Errorf("DailyDigestTime = %v, want 23:00", cfg.DailyDigestTime)
	}
	if !cfg.DailyDigestEnabled {
		t.Error("DailyDigestEnabled should default to true")
	}
	if cfg.DefaultWeekStart != 1 || cfg.DefaultWeekEnd != 16 {
		t.Errorf("default week range = %d-%d, want 1-16", cfg.DefaultWeekStart, cfg.DefaultWeekEnd)
	}
	if cfg.Port != "10000" {
		t.Errorf("Port = %s, want 10000", cfg.Port)
	}
	if cfg.MetricsUsername != "prometheus" {
		t.Errorf("MetricsUsername = %s, want prometheus", cfg.MetricsUsername)
	}
	if got := cfg.SemesterStart.Format("2006-01-02"); got != "2024-09-01" {
		t.Errorf("SemesterStart = %s, want 2024-09-01", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("REMINDER_LEAD_MINUTES", "25")
	t.Setenv("TICK_INTERVAL", "30s")
	t.Setenv("DAILY_DIGEST_TIME", "21:30")
	t.Setenv("DAILY_DIGEST_ENABLED", "false")
	t.Setenv("DEFAULT_WEEK_START", "2")
	t.Setenv("DEFAULT_WEEK_END", "18")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LeadMinutes != 25 {
		t.Errorf("LeadMinutes = %d, want 25", cfg.LeadMinutes)
	}
	if cfg.TickInterval != 30*time.Second {
		t.Errorf("TickInterval = %v, want 30s", cfg.TickInterval)
	}
	if cfg.DailyDigestTime != schedule.NewClockTime(21, 30) {
		t.Errorf("DailyDigestTime = %v, want 21:30", cfg.DailyDigestTime)
	}
	if cfg.DailyDigestEnabled {
		t.Error("DailyDigestEnabled should be false")
	}
	if cfg.DefaultWeekStart != 2 || cfg.DefaultWeekEnd != 18 {
		t.Errorf("default week range = %d-%d, want 2-18", cfg.DefaultWeekStart, cfg.DefaultWeekEnd)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
}

func TestLoadRejectsBadSemesterStart(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("SEMESTER_START", "September 1st")

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed SEMESTER_START")
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SEMESTER_START", "2024-09-01")
	t.Setenv("DATA_DIR", t.TempDir())

	if _, err := Load(); err == nil {
		t.Error("expected error for missing TELEGRAM_BOT_TOKEN")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			TelegramToken:    "token",
			SemesterStart:    time.Date(2024, 9, 1, 0, 0, 0, 0, time.Local),
			DefaultWeekStart: 1,
			DefaultWeekEnd:   16,
			LeadMinutes:      10,
			TickInterval:     time.Minute,
			Port:             "10000",
			DataDir:          "/data",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid config", func(c *Config) {}, false},
		{"Missing token", func(c *Config) { c.TelegramToken = "" }, true},
		{"Zero semester start", func(c *Config) { c.SemesterStart = time.Time{} }, true},
		{"Zero lead minutes", func(c *Config) { c.LeadMinutes = 0 }, true},
		{"Negative tick interval", func(c *Config) { c.TickInterval = -time.Second }, true},
		{"Week end before start", func(c *Config) { c.DefaultWeekStart = 10; c.DefaultWeekEnd = 2 }, true},
		{"Empty port", func(c *Config) { c.Port = "" }, true},
		{"Empty data dir", func(c *Config) { c.DataDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableFallsBackToDefault(t *testing.T) {
	cfg := &Config{}
	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if table.Size() != 10 {
		t.Errorf("default table size = %d, want 10", table.Size())
	}
}

func TestDefaultSettings(t *testing.T) {
	cfg := &Config{
		LeadMinutes:        15,
		DailyDigestEnabled: true,
		DailyDigestTime:    schedule.NewClockTime(22, 0),
	}

	settings := cfg.DefaultSettings()
	if !settings.Enabled {
		t.Error("new users should start with reminders enabled")
	}
	if settings.LeadMinutes != 15 {
		t.Errorf("LeadMinutes = %d, want 15", settings.LeadMinutes)
	}
	if settings.DailyDigestTime != schedule.NewClockTime(22, 0) {
		t.Errorf("DailyDigestTime = %v, want 22:00", settings.DailyDigestTime)
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.SQLitePath(); got != "/data/schedules.db" {
		t.Errorf("SQLitePath = %s, want /data/schedules.db", got)
	}
}
