package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is the canonical day-of-week enum, Monday through Sunday.
// It is deliberately independent of locale settings: all source vocabulary
// (星期X, 周X, lone X shorthand, English names) maps into it through an
// explicit table so the conversion is deterministic and testable.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekdayLabels = [...]string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

// cjkDayIndex maps the single CJK numeral used in 星期X / 周X / lone
// shorthand to a canonical weekday. 日 and 天 are both Sunday.
var cjkDayIndex = map[string]Weekday{
	"一": Monday,
	"二": Tuesday,
	"三": Wednesday,
	"四": Thursday,
	"五": Friday,
	"六": Saturday,
	"日": Sunday,
	"天": Sunday,
}

var englishDayIndex = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
	"mon":       Monday,
	"tue":       Tuesday,
	"wed":       Wednesday,
	"thu":       Thursday,
	"fri":       Friday,
	"sat":       Saturday,
	"sun":       Sunday,
}

// Valid reports whether the value is one of the seven canonical weekdays.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// String returns the short English name ("Mon".."Sun").
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d-1]
}

// Label returns the Chinese label ("星期一".."星期日") used in user-facing
// messages.
func (d Weekday) Label() string {
	if !d.Valid() {
		return UnknownField
	}
	return weekdayLabels[d-1]
}

// MarshalJSON encodes the weekday as its short English name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("marshal weekday: invalid value %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any token ParseWeekday recognizes.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseWeekday(s)
	if !ok {
		return fmt.Errorf("unmarshal weekday: unrecognized token %q", s)
	}
	*d = parsed
	return nil
}

// WeekdayOf converts a calendar weekday into the canonical enum.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(int(t.Weekday()))
}

// ParseWeekday converts a weekday token from any documented source
// vocabulary into the canonical enum. Recognized forms: "星期X", "周X",
// "礼拜X", a lone CJK numeral, and English names or 3-letter abbreviations.
func ParseWeekday(token string) (Weekday, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	for _, prefix := range []string{"星期", "礼拜", "周"} {
		if rest, ok := strings.CutPrefix(token, prefix); ok {
			d, found := cjkDayIndex[rest]
			return d, found
		}
	}

	if d, ok := cjkDayIndex[token]; ok {
		return d, true
	}

	if d, ok := englishDayIndex[strings.ToLower(token)]; ok {
		return d, true
	}

	return 0, false
}
