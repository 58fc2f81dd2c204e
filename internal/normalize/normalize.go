// Package normalize turns extracted schedule fragments from every source
// format into one deduplicated, validated list of canonical course
// occurrences for a single user.
package normalize

import (
	"fmt"
	"strings"

	domerrors "github.com/teheiw192/course-reminder-go/internal/errors"
	"github.com/teheiw192/course-reminder-go/internal/extract"
	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/sliceutil"
	"github.com/teheiw192/course-reminder-go/internal/timeslot"
)

// SourceKind identifies where a raw fragment came from. Decoding documents,
// spreadsheets and images into text is the ingestion layer's job; by the time
// a fragment reaches the normalizer it is plain text either way.
type SourceKind string

const (
	SourceDocument    SourceKind = "document"
	SourceSpreadsheet SourceKind = "spreadsheet"
	SourceImage       SourceKind = "image"
	SourcePlainText   SourceKind = "plainText"
)

// Fragment is one unit of raw schedule text with its source format.
type Fragment struct {
	Source SourceKind `json:"source"`
	Text   string     `json:"text"`
}

// Normalizer converts raw fragments into canonical occurrences. It is
// stateless apart from configuration and safe for concurrent use.
type Normalizer struct {
	table     *timeslot.Table
	weekStart int
	weekEnd   int
}

// New creates a normalizer resolving periods against the given table and
// applying the given default week range to fragments without a week token.
func New(table *timeslot.Table, defaultWeekStart, defaultWeekEnd int) *Normalizer {
	if defaultWeekStart < 1 || defaultWeekEnd < defaultWeekStart {
		defaultWeekStart, defaultWeekEnd = schedule.DefaultWeekStart, schedule.DefaultWeekEnd
	}
	return &Normalizer{table: table, weekStart: defaultWeekStart, weekEnd: defaultWeekEnd}
}

// merged tracks an occurrence during deduplication along with whether its
// week range came from the source text rather than the configured default.
type merged struct {
	occ          schedule.CourseOccurrence
	weekExplicit bool
}

// Normalize processes all fragments in order and returns the canonical
// occurrence list plus human-readable warnings for everything that was
// skipped or defaulted. It never fails as a whole: a fragment set with zero
// usable courses simply yields an empty list.
//
// Duplicates on (course name, weekday, time range) are merged: later
// fragments overwrite sentinel teacher/location values and default week
// ranges with more complete data. OCR and spreadsheet extraction routinely
// emit the same course split across lines with partial fields each.
func (n *Normalizer) Normalize(fragments []Fragment) ([]schedule.CourseOccurrence, []string) {
	var (
		warnings []string
		order    []string
		byKey    = make(map[string]merged)
	)

	for _, frag := range fragments {
		for _, line := range strings.Split(frag.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			fields, ok := extract.Extract(line)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: no course found in %q", frag.Source, line))
				continue
			}

			occ, err := n.build(fields)
			if err != nil {
				warnings = append(warnings, domerrors.NewParseError(line, err).Error())
				continue
			}

			key := occ.Key()
			existing, seen := byKey[key]
			if !seen {
				byKey[key] = merged{occ: occ, weekExplicit: fields.WeekStart > 0}
				order = append(order, key)
				continue
			}
			byKey[key] = mergeOccurrence(existing, occ, fields.WeekStart > 0)
		}
	}

	occurrences := make([]schedule.CourseOccurrence, 0, len(order))
	for _, key := range order {
		occurrences = append(occurrences, byKey[key].occ)
	}
	return occurrences, sliceutil.Deduplicate(warnings, func(w string) string { return w })
}

// build converts extracted fields into a validated occurrence, applying
// sentinel and week-range defaults and resolving periods against the table.
func (n *Normalizer) build(fields extract.Fields) (schedule.CourseOccurrence, error) {
	if fields.Weekday == 0 {
		return schedule.CourseOccurrence{}, domerrors.ErrNoWeekday
	}

	occ := schedule.CourseOccurrence{
		CourseName: fields.CourseName,
		Teacher:    fields.Teacher,
		Location:   fields.Location,
		Weekday:    fields.Weekday,
		WeekStart:  fields.WeekStart,
		WeekEnd:    fields.WeekEnd,
	}
	if occ.Teacher == "" {
		occ.Teacher = schedule.UnknownField
	}
	if occ.Location == "" {
		occ.Location = schedule.UnknownField
	}
	if occ.WeekStart == 0 {
		occ.WeekStart, occ.WeekEnd = n.weekStart, n.weekEnd
	}

	switch {
	case fields.TimeRange != nil:
		occ.Time = *fields.TimeRange
	case fields.PeriodStart > 0:
		r, err := n.table.ResolveRange(fields.PeriodStart, fields.PeriodEnd)
		if err != nil {
			return schedule.CourseOccurrence{}, err
		}
		occ.Time = r
		occ.Period = fields.PeriodStart
	default:
		return schedule.CourseOccurrence{}, domerrors.ErrNoTime
	}

	if err := occ.Validate(); err != nil {
		return schedule.CourseOccurrence{}, err
	}
	return occ, nil
}

// mergeOccurrence folds a later duplicate into an earlier entry. Non-sentinel
// fields from the newcomer win over sentinels; an explicit week range wins
// over the configured default.
func mergeOccurrence(existing merged, incoming schedule.CourseOccurrence, incomingWeekExplicit bool) merged {
	out := existing
	if out.occ.Teacher == schedule.UnknownField && incoming.Teacher != schedule.UnknownField {
		out.occ.Teacher = incoming.Teacher
	}
	if out.occ.Location == schedule.UnknownField && incoming.Location != schedule.UnknownField {
		out.occ.Location = incoming.Location
	}
	if !out.weekExplicit && incomingWeekExplicit {
		out.occ.WeekStart = incoming.WeekStart
		out.occ.WeekEnd = incoming.WeekEnd
		out.weekExplicit = true
	}
	if out.occ.Period == 0 && incoming.Period > 0 {
		out.occ.Period = incoming.Period
	}
	return out
}
