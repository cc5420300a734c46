// file: internals/features/school/schedules/service/recurrence_test.go
package service

import (
	"testing"
	"time"
)

func expand(t *testing.T, spec RecurrenceSpec) *Expansion {
	t.Helper()
	exp, err := ExpandRecurrence(spec)
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}
	if len(exp.Starts) != spec.Occurrences {
		t.Fatalf("got %d starts, want %d", len(exp.Starts), spec.Occurrences)
	}
	for i := 1; i < len(exp.Starts); i++ {
		if !exp.Starts[i-1].Before(exp.Starts[i]) {
			t.Fatalf("starts not strictly increasing at %d: %v >= %v", i, exp.Starts[i-1], exp.Starts[i])
		}
	}
	anchor := spec.AnchorStart.UTC()
	for i, s := range exp.Starts {
		if s.Hour() != anchor.Hour() || s.Minute() != anchor.Minute() {
			t.Fatalf("start %d lost time of day: %v", i, s)
		}
	}
	return exp
}

func TestExpandDaily(t *testing.T) {
	anchor := mustDate("2026-03-02T03:00:00Z")
	exp := expand(t, RecurrenceSpec{Type: RecurrenceDaily, Occurrences: 5, AnchorStart: anchor})

	if exp.AdjustedStart {
		t.Error("AdjustedStart should be false without a weekday set")
	}
	for i, s := range exp.Starts {
		if want := anchor.AddDate(0, 0, i); !s.Equal(want) {
			t.Errorf("start %d = %v, want %v", i, s, want)
		}
	}
}

func TestExpandWeeklyAndBiweeklyFixedStep(t *testing.T) {
	anchor := mustDate("2026-03-02T03:00:00Z")

	weekly := expand(t, RecurrenceSpec{Type: RecurrenceWeekly, Occurrences: 4, AnchorStart: anchor})
	for i, s := range weekly.Starts {
		if want := anchor.AddDate(0, 0, 7*i); !s.Equal(want) {
			t.Errorf("weekly start %d = %v, want %v", i, s, want)
		}
	}

	biweekly := expand(t, RecurrenceSpec{Type: RecurrenceBiweekly, Occurrences: 4, AnchorStart: anchor})
	for i, s := range biweekly.Starts {
		if want := anchor.AddDate(0, 0, 14*i); !s.Equal(want) {
			t.Errorf("biweekly start %d = %v, want %v", i, s, want)
		}
	}
}

func TestExpandMonthlyClampsDayOfMonth(t *testing.T) {
	// Jan 31 anchor: Feb has no 31st, so it clamps to the 28th (2026 is not a
	// leap year), then returns to the 31st where the month allows it.
	anchor := mustDate("2026-01-31T09:00:00Z")
	exp := expand(t, RecurrenceSpec{Type: RecurrenceMonthly, Occurrences: 4, AnchorStart: anchor})

	want := []time.Time{
		mustDate("2026-01-31T09:00:00Z"),
		mustDate("2026-02-28T09:00:00Z"),
		mustDate("2026-03-31T09:00:00Z"),
		mustDate("2026-04-30T09:00:00Z"),
	}
	for i, s := range exp.Starts {
		if !s.Equal(want[i]) {
			t.Errorf("start %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestExpandWeekdaySetAdjustsAnchorForward(t *testing.T) {
	// Tuesday anchor, Monday+Wednesday set: the first occurrence moves to
	// Wednesday and the caller is told about it.
	anchor := mustDate("2026-03-03T03:00:00Z") // Tuesday
	exp := expand(t, RecurrenceSpec{
		Type:        RecurrenceWeekly,
		DaysOfWeek:  []time.Weekday{time.Monday, time.Wednesday},
		Occurrences: 6,
		AnchorStart: anchor,
	})

	if !exp.AdjustedStart {
		t.Error("AdjustedStart should be true when the anchor weekday is not in the set")
	}
	want := []time.Time{
		mustDate("2026-03-04T03:00:00Z"), // Wed
		mustDate("2026-03-09T03:00:00Z"), // Mon
		mustDate("2026-03-11T03:00:00Z"), // Wed
		mustDate("2026-03-16T03:00:00Z"), // Mon
		mustDate("2026-03-18T03:00:00Z"), // Wed
		mustDate("2026-03-23T03:00:00Z"), // Mon
	}
	for i, s := range exp.Starts {
		if !s.Equal(want[i]) {
			t.Errorf("start %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestExpandWeekdaySetIdempotentAfterAdjustment(t *testing.T) {
	spec := RecurrenceSpec{
		Type:        RecurrenceWeekly,
		DaysOfWeek:  []time.Weekday{time.Monday, time.Wednesday},
		Occurrences: 6,
		AnchorStart: mustDate("2026-03-03T03:00:00Z"),
	}
	first, err := ExpandRecurrence(spec)
	if err != nil {
		t.Fatalf("ExpandRecurrence: %v", err)
	}

	// Re-running with the adjusted anchor must reproduce the same sequence
	// and no longer report an adjustment.
	spec.AnchorStart = first.Starts[0]
	second, err := ExpandRecurrence(spec)
	if err != nil {
		t.Fatalf("ExpandRecurrence (rerun): %v", err)
	}
	if second.AdjustedStart {
		t.Error("rerun should not adjust again")
	}
	for i := range first.Starts {
		if !first.Starts[i].Equal(second.Starts[i]) {
			t.Errorf("start %d diverged: %v vs %v", i, first.Starts[i], second.Starts[i])
		}
	}
}

func TestExpandBiweeklyWeekdaySetSkipsAlternateWeeks(t *testing.T) {
	anchor := mustDate("2026-03-02T03:00:00Z") // Monday
	exp := expand(t, RecurrenceSpec{
		Type:        RecurrenceBiweekly,
		DaysOfWeek:  []time.Weekday{time.Monday, time.Wednesday},
		Occurrences: 4,
		AnchorStart: anchor,
	})

	want := []time.Time{
		mustDate("2026-03-02T03:00:00Z"),
		mustDate("2026-03-04T03:00:00Z"),
		mustDate("2026-03-16T03:00:00Z"),
		mustDate("2026-03-18T03:00:00Z"),
	}
	for i, s := range exp.Starts {
		if !s.Equal(want[i]) {
			t.Errorf("start %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestExpandRejectsInvalidSpecs(t *testing.T) {
	anchor := mustDate("2026-03-02T03:00:00Z")
	cases := []struct {
		name string
		spec RecurrenceSpec
	}{
		{"zero occurrences", RecurrenceSpec{Type: RecurrenceDaily, Occurrences: 0, AnchorStart: anchor}},
		{"too many occurrences", RecurrenceSpec{Type: RecurrenceDaily, Occurrences: 53, AnchorStart: anchor}},
		{"unknown type", RecurrenceSpec{Type: "fortnightly", Occurrences: 3, AnchorStart: anchor}},
		{"monthly with weekday set", RecurrenceSpec{Type: RecurrenceMonthly, DaysOfWeek: []time.Weekday{time.Monday}, Occurrences: 3, AnchorStart: anchor}},
		{"invalid weekday", RecurrenceSpec{Type: RecurrenceWeekly, DaysOfWeek: []time.Weekday{time.Weekday(7)}, Occurrences: 3, AnchorStart: anchor}},
	}
	for _, tc := range cases {
		_, err := ExpandRecurrence(tc.spec)
		se, ok := AsScheduleError(err)
		if !ok || se.Code != ErrCodeInvalidRecurrence {
			t.Errorf("%s: got %v, want %s", tc.name, err, ErrCodeInvalidRecurrence)
		}
	}
}

func TestExpandMaxOccurrencesBoundary(t *testing.T) {
	anchor := mustDate("2026-03-02T03:00:00Z")
	exp := expand(t, RecurrenceSpec{Type: RecurrenceWeekly, Occurrences: 52, AnchorStart: anchor})
	if last, want := exp.Starts[51], anchor.AddDate(0, 0, 7*51); !last.Equal(want) {
		t.Errorf("last start = %v, want %v", last, want)
	}
}
