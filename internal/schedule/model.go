// Package schedule defines the canonical data model for a user's weekly
// class schedule. Every ingestion path (document, spreadsheet, OCR, typed
// text) is translated into these types before anything else looks at it.
package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// UnknownField is the sentinel for fields the extractor could not resolve.
const UnknownField = "未知"

// Default academic week range applied when a fragment carries no week token.
const (
	DefaultWeekStart = 1
	DefaultWeekEnd   = 16
)

// ClockTime is a wall-clock time of day stored as minutes since midnight.
type ClockTime int

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse clock time %q: out of range", s)
	}
	return NewClockTime(hour, minute), nil
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int { return int(c) % 60 }

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// FromTime extracts the clock time of a time.Time, truncated to the minute.
func FromTime(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

// MarshalJSON encodes the time as an "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeRange is a start/end pair of clock times within one day.
type TimeRange struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Valid reports whether the range is well-formed (start strictly before end).
func (r TimeRange) Valid() bool { return r.Start < r.End }

// String formats the range as "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// CourseOccurrence is one weekly recurring meeting of a course, valid across
// a contiguous range of academic weeks. Occurrences are immutable once stored;
// a user's schedule is only ever replaced as a whole.
type CourseOccurrence struct {
	CourseName string    `json:"course_name"`
	Teacher    string    `json:"teacher"`
	Location   string    `json:"location"`
	Weekday    Weekday   `json:"weekday"`
	Period     int       `json:"period,omitempty"` // 1-based class period, 0 when derived from an explicit time
	Time       TimeRange `json:"time_range"`
	WeekStart  int       `json:"week_start"`
	WeekEnd    int       `json:"week_end"`
}

// Key identifies an occurrence for deduplication purposes. Two fragments
// describing the same (course, weekday, time) collapse into one entry.
func (o CourseOccurrence) Key() string {
	return fmt.Sprintf("%s|%d|%s", o.CourseName, o.Weekday, o.Time)
}

// Validate checks the invariants every stored occurrence must satisfy.
func (o CourseOccurrence) Validate() error {
	if o.CourseName == "" {
		return fmt.Errorf("occurrence missing course name")
	}
	if !o.Weekday.Valid() {
		return fmt.Errorf("occurrence %q: invalid weekday", o.CourseName)
	}
	if !o.Time.Valid() {
		return fmt.Errorf("occurrence %q: start %s not before end %s", o.CourseName, o.Time.Start, o.Time.End)
	}
	if o.WeekStart < 1 || o.WeekEnd < o.WeekStart {
		return fmt.Errorf("occurrence %q: invalid week range %d-%d", o.CourseName, o.WeekStart, o.WeekEnd)
	}
	return nil
}

// ActiveInWeek reports whether the occurrence is scheduled during the given
// academic week.
func (o CourseOccurrence) ActiveInWeek(week int) bool {
	return week >= o.WeekStart && week <= o.WeekEnd
}

// ReminderSettings holds the per-user reminder preferences stored alongside
// the occurrence list.
type ReminderSettings struct {
	Enabled            bool      `json:"enabled"`
	LeadMinutes        int       `json:"lead_minutes"`
	DailyDigestEnabled bool      `json:"daily_digest_enabled"`
	DailyDigestTime    ClockTime `json:"daily_digest_time"`
}

// Validate checks the settings invariants.
func (s ReminderSettings) Validate() error {
	if s.LeadMinutes <= 0 {
		return fmt.Errorf("lead_minutes must be positive, got %d", s.LeadMinutes)
	}
	return nil
}

// UserSchedule is the full stored record for one user: the canonical
// occurrence list plus reminder settings. Saves replace the record
// atomically; there are no partial in-place edits.
type UserSchedule struct {
	Occurrences []CourseOccurrence `json:"occurrences"`
	Settings    ReminderSettings   `json:"settings"`
	UpdatedAt   int64              `json:"updated_at"`
}
