// Package timeslot maps institution-defined class periods ("第N节") to
// wall-clock start/end times. The table is supplied by configuration; the
// default matches the common five-pairs-per-day layout where 第1-2节 runs
// 08:00-09:40.
package timeslot

import (
	"fmt"
	"sort"

	"github.com/teheiw192/course-reminder-go/internal/errors"
	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

// Slot is one class period with its resolved wall-clock time range.
type Slot struct {
	Period int
	Start  schedule.ClockTime
	End    schedule.ClockTime
}

// Table resolves period numbers to time ranges. Immutable after construction.
type Table struct {
	slots map[int]Slot
}

// New builds a table from the given slots. Periods must be unique, 1-based,
// and each slot must have start before end.
func New(slots []Slot) (*Table, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("timeslot: table must have at least one entry")
	}
	m := make(map[int]Slot, len(slots))
	for _, s := range slots {
		if s.Period < 1 {
			return nil, fmt.Errorf("timeslot: period must be 1-based, got %d", s.Period)
		}
		if s.Start >= s.End {
			return nil, fmt.Errorf("timeslot: period %d: start %s not before end %s", s.Period, s.Start, s.End)
		}
		if _, dup := m[s.Period]; dup {
			return nil, fmt.Errorf("timeslot: duplicate period %d", s.Period)
		}
		m[s.Period] = s
	}
	return &Table{slots: m}, nil
}

// Default returns the standard ten-period table: five 100-minute blocks split
// into two halves each, so 第1-2节 resolves to 08:00-09:40 and 第9-10节 to
// 19:00-20:40.
func Default() *Table {
	mk := func(p int, sh, sm, eh, em int) Slot {
		return Slot{Period: p, Start: schedule.NewClockTime(sh, sm), End: schedule.NewClockTime(eh, em)}
	}
	t, err := New([]Slot{
		mk(1, 8, 0, 8, 50),
		mk(2, 8, 50, 9, 40),
		mk(3, 10, 0, 10, 50),
		mk(4, 10, 50, 11, 40),
		mk(5, 14, 0, 14, 50),
		mk(6, 14, 50, 15, 40),
		mk(7, 16, 0, 16, 50),
		mk(8, 16, 50, 17, 40),
		mk(9, 19, 0, 19, 50),
		mk(10, 19, 50, 20, 40),
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return t
}

// Size returns the number of configured periods.
func (t *Table) Size() int { return len(t.slots) }

// Resolve returns the time range of a single period. Periods outside the
// configured table yield ErrUnknownPeriod; there is no silent fallback.
func (t *Table) Resolve(period int) (Slot, error) {
	s, ok := t.slots[period]
	if !ok {
		return Slot{}, fmt.Errorf("period %d (table size %d): %w", period, len(t.slots), errors.ErrUnknownPeriod)
	}
	return s, nil
}

// ResolveRange returns the combined time range of a period span such as
// 第1-2节: the start of the first period through the end of the last.
func (t *Table) ResolveRange(startPeriod, endPeriod int) (schedule.TimeRange, error) {
	if endPeriod < startPeriod {
		startPeriod, endPeriod = endPeriod, startPeriod
	}
	first, err := t.Resolve(startPeriod)
	if err != nil {
		return schedule.TimeRange{}, err
	}
	last, err := t.Resolve(endPeriod)
	if err != nil {
		return schedule.TimeRange{}, err
	}
	return schedule.TimeRange{Start: first.Start, End: last.End}, nil
}

// Slots returns the configured slots ordered by period number.
func (t *Table) Slots() []Slot {
	out := make([]Slot, 0, len(t.slots))
	for _, s := range t.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// FormatPeriod renders a period span with its resolved times, e.g.
// "第1-2节（08:00-09:40）". Unresolvable periods fall back to the bare span.
func (t *Table) FormatPeriod(startPeriod, endPeriod int) string {
	span := fmt.Sprintf("第%d节", startPeriod)
	if endPeriod > startPeriod {
		span = fmt.Sprintf("第%d-%d节", startPeriod, endPeriod)
	}
	r, err := t.ResolveRange(startPeriod, endPeriod)
	if err != nil {
		return span
	}
	return fmt.Sprintf("%s（%s）", span, r)
}
