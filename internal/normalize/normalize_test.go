package normalize

import (
	"strings"
	"testing"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/timeslot"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return New(timeslot.Default(), schedule.DefaultWeekStart, schedule.DefaultWeekEnd)
}

func TestNormalizeTypicalFragment(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "高等数学 星期一 第1-2节 A101 张老师 第1-16周"},
	})

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}

	want := schedule.CourseOccurrence{
		CourseName: "高等数学",
		Teacher:    "张老师",
		Location:   "A101",
		Weekday:    schedule.Monday,
		Period:     1,
		Time: schedule.TimeRange{
			Start: schedule.NewClockTime(8, 0),
			End:   schedule.NewClockTime(9, 40),
		},
		WeekStart: 1,
		WeekEnd:   16,
	}
	if occs[0] != want {
		t.Errorf("occurrence = %+v, want %+v", occs[0], want)
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, _ := n.Normalize([]Fragment{
		{Source: SourceDocument, Text: "大学英语 周三 14:00-15:40"},
	})
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}

	occ := occs[0]
	if occ.Teacher != schedule.UnknownField {
		t.Errorf("Teacher = %q, want sentinel", occ.Teacher)
	}
	if occ.Location != schedule.UnknownField {
		t.Errorf("Location = %q, want sentinel", occ.Location)
	}
	if occ.WeekStart != schedule.DefaultWeekStart || occ.WeekEnd != schedule.DefaultWeekEnd {
		t.Errorf("Weeks = %d-%d, want default %d-%d", occ.WeekStart, occ.WeekEnd, schedule.DefaultWeekStart, schedule.DefaultWeekEnd)
	}
	if occ.Period != 0 {
		t.Errorf("Period = %d, want 0 for explicit time range", occ.Period)
	}
}

func TestNormalizeSkipsFragmentWithoutWeekday(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize([]Fragment{
		{Source: SourceImage, Text: "高等数学 第1-2节"},
	})
	if len(occs) != 0 {
		t.Fatalf("got %d occurrences, want 0", len(occs))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "高等数学") {
		t.Errorf("warning should carry the offending fragment: %q", warnings[0])
	}
}

func TestNormalizeSkipsFragmentWithoutTime(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "高等数学 星期一"},
	})
	if len(occs) != 0 {
		t.Fatalf("got %d occurrences, want 0", len(occs))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestNormalizeUnknownPeriodDropsLineOnly(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize([]Fragment{
		{Source: SourceSpreadsheet, Text: "奇怪课程 星期二 第13节\n大学英语 周三 第3-4节"},
	})

	// The unresolvable line is skipped with a warning; the good line survives.
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	if occs[0].CourseName != "大学英语" {
		t.Errorf("kept course = %q, want 大学英语", occs[0].CourseName)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}

func TestNormalizeMergesDuplicates(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, _ := n.Normalize([]Fragment{
		{Source: SourceImage, Text: "高等数学 星期一 第1-2节"},
		{Source: SourceImage, Text: "高等数学 星期一 第1-2节 A101 张老师 第3-12周"},
	})

	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}

	occ := occs[0]
	if occ.Teacher != "张老师" {
		t.Errorf("Teacher = %q, want merged 张老师", occ.Teacher)
	}
	if occ.Location != "A101" {
		t.Errorf("Location = %q, want merged A101", occ.Location)
	}
	if occ.WeekStart != 3 || occ.WeekEnd != 12 {
		t.Errorf("Weeks = %d-%d, want explicit 3-12 over default", occ.WeekStart, occ.WeekEnd)
	}
}

func TestNormalizeMergeKeepsFirstNonSentinel(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, _ := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "高等数学 星期一 第1-2节 张老师"},
		{Source: SourcePlainText, Text: "高等数学 星期一 第1-2节 李老师"},
	})

	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	if occs[0].Teacher != "张老师" {
		t.Errorf("Teacher = %q, want first value 张老师", occs[0].Teacher)
	}
}

func TestNormalizeDistinctTimesStayDistinct(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, _ := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "高等数学 星期一 第1-2节\n高等数学 星期一 第3-4节"},
	})

	// Same course twice on one day at different times is two occurrences.
	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occs))
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	fragments := []Fragment{
		{Source: SourceDocument, Text: "高等数学 星期一 第1-2节 A101\n大学英语 周三 14:00-15:40 B203"},
	}

	first, _ := n.Normalize(fragments)
	second, _ := n.Normalize(fragments)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("occurrence %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, _ := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "大学英语 周三 第3-4节"},
		{Source: SourcePlainText, Text: "高等数学 星期一 第1-2节"},
	})

	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occs))
	}
	if occs[0].CourseName != "大学英语" || occs[1].CourseName != "高等数学" {
		t.Errorf("occurrences out of input order: %v, %v", occs[0].CourseName, occs[1].CourseName)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize(nil)
	if len(occs) != 0 {
		t.Errorf("got %d occurrences, want 0", len(occs))
	}
	if len(warnings) != 0 {
		t.Errorf("got %d warnings, want 0", len(warnings))
	}

	occs, _ = n.Normalize([]Fragment{{Source: SourcePlainText, Text: "\n\n  \n"}})
	if len(occs) != 0 {
		t.Errorf("blank text produced %d occurrences, want 0", len(occs))
	}
}

func TestNormalizeDuplicateWarningsCollapse(t *testing.T) {
	t.Parallel()
	n := newTestNormalizer(t)

	occs, warnings := n.Normalize([]Fragment{
		{Source: SourcePlainText, Text: "星期一 第1-2节\n星期一 第1-2节"},
	})
	if len(occs) != 0 {
		t.Fatalf("got %d occurrences, want 0", len(occs))
	}
	if len(warnings) != 1 {
		t.Errorf("identical warnings should deduplicate, got %v", warnings)
	}
}
