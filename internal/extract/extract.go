// Package extract pulls course fields out of one fragment of raw schedule
// text: a document line, a spreadsheet cell value, or an OCR-segmented line.
//
// Matching is permissive by field and strict only about the course name: any
// individual matcher may fail and leave its field at a sentinel default, but
// a fragment with no recognizable course name yields nothing. Source files
// differ on which fields appear per line, and all-or-nothing matching drops
// valid courses whenever a single field is unrecognized.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/stringutil"
)

// Fields is the partial course occurrence recovered from one fragment.
// Zero values mean "not present in this fragment"; the normalizer decides
// defaults and whether the fragment is usable at all.
type Fields struct {
	CourseName  string
	Teacher     string
	Location    string
	Weekday     schedule.Weekday    // 0 when no weekday token matched
	TimeRange   *schedule.TimeRange // explicit HH:MM-HH:MM, nil when absent
	PeriodStart int                 // 第N节 / 第N-M节, 0 when absent
	PeriodEnd   int
	WeekStart   int // 第A-B周, 0 when absent
	WeekEnd     int
}

var (
	weekdayRe   = regexp.MustCompile(`(?:星期|礼拜|周)([一二三四五六日天])`)
	timeRangeRe = regexp.MustCompile(`([0-2]?\d:[0-5]\d)\s*[-~]\s*([0-2]?\d:[0-5]\d)`)
	periodRe    = regexp.MustCompile(`第(\d{1,2})(?:\s*[-~]\s*(\d{1,2}))?节`)
	weekSpanRe  = regexp.MustCompile(`第?(\d{1,2})\s*[-~]\s*(\d{1,2})周`)
	weekOneRe   = regexp.MustCompile(`第(\d{1,2})周`)
	roomRe      = regexp.MustCompile(`[A-Za-z]\d{3,4}`)
	teacherRe   = regexp.MustCompile(`(\p{Han}{1,4})老师`)

	// Labeled forms from the chat template: 课程名称：X / 教师：X / 上课地点：X
	courseLabelRe   = regexp.MustCompile(`课程(?:名称)?[:：]\s*(\S+)`)
	teacherLabelRe  = regexp.MustCompile(`(?:教师|老师)[:：]\s*(\S+)`)
	locationLabelRe = regexp.MustCompile(`(?:上课)?地点[:：]?\s*(\S+)`)
)

// Extract parses one fragment. The second return value is false when no
// course name could be found, in which case the fragment should be skipped.
func Extract(text string) (Fields, bool) {
	// Fold full-width digits, colons and dashes so OCR output matches the
	// same patterns as typed text.
	s := width.Narrow.String(strings.TrimSpace(text))
	if s == "" {
		return Fields{}, false
	}

	var f Fields

	// Explicit time range wins over period tokens; strip it first so the
	// week regexes never see its digits.
	if m := timeRangeRe.FindStringSubmatch(s); m != nil {
		start, err1 := schedule.ParseClockTime(m[1])
		end, err2 := schedule.ParseClockTime(m[2])
		if err1 == nil && err2 == nil {
			f.TimeRange = &schedule.TimeRange{Start: start, End: end}
		}
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := periodRe.FindStringSubmatch(s); m != nil {
		f.PeriodStart, _ = strconv.Atoi(m[1])
		f.PeriodEnd = f.PeriodStart
		if m[2] != "" {
			f.PeriodEnd, _ = strconv.Atoi(m[2])
		}
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := weekSpanRe.FindStringSubmatch(s); m != nil {
		f.WeekStart, _ = strconv.Atoi(m[1])
		f.WeekEnd, _ = strconv.Atoi(m[2])
		s = strings.Replace(s, m[0], " ", 1)
	} else if m := weekOneRe.FindStringSubmatch(s); m != nil {
		f.WeekStart, _ = strconv.Atoi(m[1])
		f.WeekEnd = f.WeekStart
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		if d, ok := schedule.ParseWeekday(m[1]); ok {
			f.Weekday = d
		}
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := teacherLabelRe.FindStringSubmatch(s); m != nil {
		f.Teacher = m[1]
		s = strings.Replace(s, m[0], " ", 1)
	} else if m := teacherRe.FindStringSubmatch(s); m != nil {
		f.Teacher = m[1] + "老师"
		s = strings.Replace(s, m[0], " ", 1)
	}

	if m := locationLabelRe.FindStringSubmatch(s); m != nil {
		f.Location = m[1]
		s = strings.Replace(s, m[0], " ", 1)
	} else if m := roomRe.FindString(s); m != "" {
		f.Location = m
		s = strings.Replace(s, m, " ", 1)
	}

	if m := courseLabelRe.FindStringSubmatch(s); m != nil {
		f.CourseName = m[1]
		s = strings.Replace(s, m[0], " ", 1)
	}

	// Whatever is left is scanned token by token: lone weekday shorthand
	// first, then the first plausible name token.
	for _, token := range strings.Fields(s) {
		if f.Weekday == 0 {
			if d, ok := schedule.ParseWeekday(token); ok {
				f.Weekday = d
				continue
			}
		}
		if f.CourseName == "" && stringutil.IsNameToken(token) && !stringutil.IsNumeric(token) {
			f.CourseName = token
		}
	}

	if f.CourseName == "" {
		return Fields{}, false
	}
	return f, true
}
