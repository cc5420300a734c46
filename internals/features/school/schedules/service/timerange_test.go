// file: internals/features/school/schedules/service/timerange_test.go
package service

import (
	"testing"
	"time"
)

func TestBuildTimeRangeConvertsWallClockToUTC(t *testing.T) {
	// 10:00 wall clock at UTC+7 is 03:00 UTC
	anchor := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r, err := BuildTimeRange(anchor, 60, 7*60)
	if err != nil {
		t.Fatalf("BuildTimeRange: %v", err)
	}
	if got, want := r.Start, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("start = %v, want %v", got, want)
	}
	if got, want := r.End, time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("end = %v, want %v", got, want)
	}
}

func TestBuildTimeRangeIgnoresAnchorLocation(t *testing.T) {
	// Same wall-clock fields in two different locations must land on the same
	// UTC instant once the explicit offset is applied.
	jakarta := time.FixedZone("WIB", 7*3600)
	a1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	a2 := time.Date(2026, 3, 2, 10, 0, 0, 0, jakarta)

	r1, err := BuildTimeRange(a1, 30, -300)
	if err != nil {
		t.Fatalf("BuildTimeRange: %v", err)
	}
	r2, err := BuildTimeRange(a2, 30, -300)
	if err != nil {
		t.Fatalf("BuildTimeRange: %v", err)
	}
	if !r1.Start.Equal(r2.Start) {
		t.Errorf("starts differ: %v vs %v", r1.Start, r2.Start)
	}
}

func TestBuildTimeRangeNegativeOffset(t *testing.T) {
	// 09:30 wall clock at UTC-5 is 14:30 UTC
	anchor := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	r, err := BuildTimeRange(anchor, 45, -5*60)
	if err != nil {
		t.Fatalf("BuildTimeRange: %v", err)
	}
	if got, want := r.Start, time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("start = %v, want %v", got, want)
	}
}

func TestBuildTimeRangeRejectsNonPositiveDuration(t *testing.T) {
	anchor := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	for _, dur := range []int{0, -15} {
		_, err := BuildTimeRange(anchor, dur, 0)
		se, ok := AsScheduleError(err)
		if !ok || se.Code != ErrCodeInvalidDuration {
			t.Errorf("duration %d: got %v, want %s", dur, err, ErrCodeInvalidDuration)
		}
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	mk := func(s, e string) TimeRange {
		return TimeRange{Start: mustDate(s), End: mustDate(e)}
	}

	cases := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"partial overlap", mk("2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"), mk("2026-03-02T10:30:00Z", "2026-03-02T11:30:00Z"), true},
		{"touching endpoints", mk("2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"), mk("2026-03-02T11:00:00Z", "2026-03-02T12:00:00Z"), false},
		{"containment", mk("2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z"), mk("2026-03-02T10:30:00Z", "2026-03-02T11:00:00Z"), true},
		{"disjoint", mk("2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"), mk("2026-03-02T13:00:00Z", "2026-03-02T14:00:00Z"), false},
		{"identical", mk("2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"), mk("2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"), true},
	}

	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// symmetry
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWithStartKeepsDuration(t *testing.T) {
	r := TimeRange{Start: mustDate("2026-03-02T10:00:00Z"), End: mustDate("2026-03-02T11:30:00Z")}
	moved := r.WithStart(mustDate("2026-03-09T10:00:00Z"))
	if got, want := moved.Duration(), 90*time.Minute; got != want {
		t.Errorf("duration = %v, want %v", got, want)
	}
	if !moved.End.Equal(mustDate("2026-03-09T11:30:00Z")) {
		t.Errorf("end = %v", moved.End)
	}
}
