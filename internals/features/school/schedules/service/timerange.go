// file: internals/features/school/schedules/service/timerange.go
package service

import "time"

// TimeRange is one candidate session window, both endpoints UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// BuildTimeRange turns the wall-clock instant the user intended (anchor read
// field-by-field, its own location ignored) plus a duration and a UTC offset
// in minutes into a UTC window. Duration <= 0 is rejected, never clamped.
func BuildTimeRange(anchor time.Time, durationMin int, tzOffsetMin int) (TimeRange, error) {
	if durationMin <= 0 {
		return TimeRange{}, newScheduleError(ErrCodeInvalidDuration, "duration must be positive minutes")
	}
	loc := time.FixedZone("", tzOffsetMin*60)
	start := time.Date(
		anchor.Year(), anchor.Month(), anchor.Day(),
		anchor.Hour(), anchor.Minute(), anchor.Second(), 0,
		loc,
	).UTC()
	return TimeRange{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}, nil
}

func (r TimeRange) Duration() time.Duration { return r.End.Sub(r.Start) }

// WithStart keeps the range's duration and moves it to a new start.
func (r TimeRange) WithStart(start time.Time) TimeRange {
	return TimeRange{Start: start, End: start.Add(r.Duration())}
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && s2 < e1. Touching endpoints do not conflict.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}
