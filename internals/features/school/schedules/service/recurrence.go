// file: internals/features/school/schedules/service/recurrence.go
package service

import (
	"fmt"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

const (
	minOccurrences = 1
	maxOccurrences = 52
)

// RecurrenceSpec describes one series: how often, optionally which weekdays,
// and how many instances. AnchorStart is the UTC start instant of the first
// intended session; its time-of-day is preserved on every occurrence.
type RecurrenceSpec struct {
	Type        RecurrenceType
	DaysOfWeek  []time.Weekday // 0=Sunday..6=Saturday; valid for daily/weekly/biweekly only
	Occurrences int
	AnchorStart time.Time
}

// Expansion is the expander output: exactly Occurrences strictly increasing
// start instants. AdjustedStart is set when the anchor's weekday was not in
// DaysOfWeek and Starts[0] had to move forward to the next eligible day —
// callers surface that back to the user as an adjusted start date notice.
type Expansion struct {
	Starts        []time.Time
	AdjustedStart bool
}

// ExpandRecurrence validates the spec and produces the occurrence starts.
// The whole sequence is materialized eagerly: the writer must conflict-check
// every candidate before committing any record.
func ExpandRecurrence(spec RecurrenceSpec) (*Expansion, error) {
	if spec.Occurrences < minOccurrences || spec.Occurrences > maxOccurrences {
		return nil, newScheduleError(ErrCodeInvalidRecurrence,
			fmt.Sprintf("occurrences must be between %d and %d", minOccurrences, maxOccurrences))
	}

	switch spec.Type {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly:
		// ok
	case RecurrenceMonthly:
		if len(spec.DaysOfWeek) > 0 {
			return nil, newScheduleError(ErrCodeInvalidRecurrence, "monthly recurrence cannot carry a weekday set")
		}
	default:
		return nil, newScheduleError(ErrCodeInvalidRecurrence, fmt.Sprintf("unknown recurrence type %q", spec.Type))
	}

	daySet, err := buildWeekdaySet(spec.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	anchor := spec.AnchorStart.UTC()
	if len(daySet) == 0 {
		return &Expansion{Starts: expandFixedStep(spec.Type, anchor, spec.Occurrences)}, nil
	}
	return expandWithWeekdaySet(spec.Type, anchor, daySet, spec.Occurrences), nil
}

func buildWeekdaySet(days []time.Weekday) (map[time.Weekday]bool, error) {
	if len(days) == 0 {
		return nil, nil
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return nil, newScheduleError(ErrCodeInvalidRecurrence, fmt.Sprintf("invalid weekday %d", d))
		}
		set[d] = true
	}
	return set, nil
}

// expandFixedStep handles specs without a weekday set: the anchor itself is
// the first occurrence, each next one steps a fixed period forward.
func expandFixedStep(typ RecurrenceType, anchor time.Time, n int) []time.Time {
	starts := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		switch typ {
		case RecurrenceDaily:
			starts = append(starts, anchor.AddDate(0, 0, i))
		case RecurrenceWeekly:
			starts = append(starts, anchor.AddDate(0, 0, 7*i))
		case RecurrenceBiweekly:
			starts = append(starts, anchor.AddDate(0, 0, 14*i))
		case RecurrenceMonthly:
			starts = append(starts, addMonthsClamped(anchor, i))
		}
	}
	return starts
}

// expandWithWeekdaySet scans forward day-by-day keeping days whose weekday is
// in the set. The weekday set decides which days inside a week qualify; the
// type decides which weeks qualify (biweekly skips one week after each
// scanned week). The scan is anchored at the first eligible day >= anchor so
// re-running with the adjusted anchor reproduces the same sequence.
func expandWithWeekdaySet(typ RecurrenceType, anchor time.Time, set map[time.Weekday]bool, n int) *Expansion {
	cursor := anchor
	for !set[cursor.Weekday()] {
		cursor = cursor.AddDate(0, 0, 1)
	}
	adjusted := !cursor.Equal(anchor)

	starts := make([]time.Time, 0, n)
	d := cursor
	for len(starts) < n {
		for i := 0; i < 7 && len(starts) < n; i++ {
			if set[d.Weekday()] {
				starts = append(starts, d)
			}
			d = d.AddDate(0, 0, 1)
		}
		if typ == RecurrenceBiweekly {
			d = d.AddDate(0, 0, 7)
		}
	}
	return &Expansion{Starts: starts, AdjustedStart: adjusted}
}

// addMonthsClamped preserves the anchor's day-of-month, clamping at the
// target month's end (Jan 31 + 1 month = Feb 28/29, never Mar 2/3 like
// time.AddDate would normalize to).
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
