package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teheiw192/course-reminder-go/internal/schedule"
	"github.com/teheiw192/course-reminder-go/internal/timeslot"
)

// ParseSlots parses the TIME_SLOTS environment variable:
// comma-separated "period=HH:MM-HH:MM" entries, e.g.
//
//	1=08:00-08:50,2=08:50-09:40
//
// An empty string yields nil, meaning the built-in default table applies.
func ParseSlots(raw string) ([]timeslot.Slot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var slots []timeslot.Slot
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		periodPart, timePart, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q: want period=HH:MM-HH:MM", entry)
		}
		period, err := strconv.Atoi(strings.TrimSpace(periodPart))
		if err != nil {
			return nil, fmt.Errorf("entry %q: bad period: %w", entry, err)
		}

		startPart, endPart, ok := strings.Cut(timePart, "-")
		if !ok {
			return nil, fmt.Errorf("entry %q: want period=HH:MM-HH:MM", entry)
		}
		start, err := schedule.ParseClockTime(strings.TrimSpace(startPart))
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		end, err := schedule.ParseClockTime(strings.TrimSpace(endPart))
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}

		slots = append(slots, timeslot.Slot{Period: period, Start: start, End: end})
	}
	return slots, nil
}
