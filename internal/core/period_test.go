package core

import (
	"errors"
	"testing"
	"time"
)

func TestResolveRangeDefaults(t *testing.T) {
	now := time.Date(2024, 3, 19, 15, 42, 7, 0, time.UTC)

	r, err := ResolveRange("", "", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r.End != NewDate(2024, 3, 19) {
		t.Fatalf("end = %s, want 2024-03-19", r.End)
	}
	if r.Start != NewDate(2024, 2, 18) {
		t.Fatalf("start = %s, want 2024-02-18", r.Start)
	}
}

func TestResolveRangeExplicit(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	r, err := ResolveRange("2024-03-10", "2024-03-19", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r.Start != NewDate(2024, 3, 10) || r.End != NewDate(2024, 3, 19) {
		t.Fatalf("range = %s, want 2024-03-10..2024-03-19", r)
	}
	if r.Days() != 10 {
		t.Fatalf("days = %d, want 10", r.Days())
	}
}

func TestResolveRangeErrors(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		from, to string
	}{
		{"malformed from", "03/10/2024", ""},
		{"malformed to", "", "not-a-date"},
		{"from after to", "2024-03-20", "2024-03-19"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ResolveRange(tc.from, tc.to, now); !errors.Is(err, ErrInvalidDateFormat) {
				t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
			}
		})
	}
}

func TestPreviousWindow(t *testing.T) {
	// 10-day primary window shifts back 10 days: no gap, no overlap.
	r := DateRange{Start: NewDate(2024, 3, 10), End: NewDate(2024, 3, 19)}
	prev := r.Previous()
	if prev.Start != NewDate(2024, 2, 29) || prev.End != NewDate(2024, 3, 9) {
		t.Fatalf("previous = %s, want 2024-02-29..2024-03-09", prev)
	}
	if prev.Days() != r.Days() {
		t.Fatalf("previous length %d != primary length %d", prev.Days(), r.Days())
	}
}

func TestPreviousWindowSingleDay(t *testing.T) {
	r := DateRange{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 1)}
	if r.Days() != 1 {
		t.Fatalf("days = %d, want 1", r.Days())
	}
	prev := r.Previous()
	if prev.Start != NewDate(2024, 2, 29) || prev.End != NewDate(2024, 2, 29) {
		t.Fatalf("previous = %s, want 2024-02-29..2024-02-29", prev)
	}
}

func TestContains(t *testing.T) {
	r := DateRange{Start: NewDate(2024, 3, 10), End: NewDate(2024, 3, 19)}
	if !r.Contains(NewDate(2024, 3, 10)) || !r.Contains(NewDate(2024, 3, 19)) {
		t.Fatal("bounds must be inclusive")
	}
	if r.Contains(NewDate(2024, 3, 9)) || r.Contains(NewDate(2024, 3, 20)) {
		t.Fatal("dates outside the range must be excluded")
	}
}
