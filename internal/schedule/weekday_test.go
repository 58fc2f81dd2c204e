package schedule

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		token string
		want  Weekday
		ok    bool
	}{
		{"Full form Monday", "星期一", Monday, true},
		{"Full form Sunday ri", "星期日", Sunday, true},
		{"Full form Sunday tian", "星期天", Sunday, true},
		{"Zhou prefix", "周三", Wednesday, true},
		{"Libai prefix", "礼拜五", Friday, true},
		{"Lone numeral", "二", Tuesday, true},
		{"Lone tian", "天", Sunday, true},
		{"English full", "Thursday", Thursday, true},
		{"English abbreviation", "sat", Saturday, true},
		{"Mixed case English", "MONDAY", Monday, true},
		{"Surrounding whitespace", " 周六 ", Saturday, true},
		{"Out of range numeral", "星期八", 0, false},
		{"Empty string", "", 0, false},
		{"Unrelated token", "数学", 0, false},
		{"Prefix without numeral", "星期", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseWeekday(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseWeekday(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestWeekdayStringAndLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		day   Weekday
		str   string
		label string
	}{
		{Monday, "Mon", "星期一"},
		{Friday, "Fri", "星期五"},
		{Sunday, "Sun", "星期日"},
	}

	for _, tt := range tests {
		if got := tt.day.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.day.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
	}

	if Weekday(0).Valid() || Weekday(8).Valid() {
		t.Error("out-of-range weekdays should not be valid")
	}
	if Weekday(0).Label() != UnknownField {
		t.Error("invalid weekday label should be the unknown sentinel")
	}
}

func TestWeekdayOf(t *testing.T) {
	t.Parallel()
	// 2024-09-01 is a Sunday, 2024-09-02 a Monday.
	sunday := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)

	if got := WeekdayOf(sunday); got != Sunday {
		t.Errorf("WeekdayOf(Sunday) = %v, want Sunday", got)
	}
	if got := WeekdayOf(monday); got != Monday {
		t.Errorf("WeekdayOf(Monday) = %v, want Monday", got)
	}
}

func TestWeekdayJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Wednesday)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Wed"` {
		t.Errorf("marshal = %s, want \"Wed\"", data)
	}

	var d Weekday
	if err := json.Unmarshal([]byte(`"星期五"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d != Friday {
		t.Errorf("unmarshal = %v, want Friday", d)
	}

	if err := json.Unmarshal([]byte(`"nonsense"`), &d); err == nil {
		t.Error("expected error for unrecognized token")
	}

	if _, err := json.Marshal(Weekday(9)); err == nil {
		t.Error("expected error marshaling invalid weekday")
	}
}
