package core

import (
	"fmt"
	"time"
)

// defaultRangeDays is how far back the window reaches when the caller does
// not supply a start date.
const defaultRangeDays = 30

// DateRange is an inclusive calendar-date window. Invariant: Start <= End.
type DateRange struct {
	Start Date
	End   Date
}

// ResolveRange parses the optional from/to parameters into the primary
// window. Missing values default to the 30 days ending at now. Malformed
// dates and ill-ordered bounds fail with ErrInvalidDateFormat before any
// ledger read happens.
func ResolveRange(from, to string, now time.Time) (DateRange, error) {
	end := DateOf(now)
	if to != "" {
		parsed, err := ParseDate(to)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: to=%q", ErrInvalidDateFormat, to)
		}
		end = parsed
	}

	start := end.AddDays(-defaultRangeDays)
	if from != "" {
		parsed, err := ParseDate(from)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: from=%q", ErrInvalidDateFormat, from)
		}
		start = parsed
	}

	if start.After(end.Time) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidDateFormat, start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns the inclusive day count of the range. A single-day range
// counts as 1.
func (r DateRange) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Previous returns the comparison window: same inclusive length, ending
// exactly the day before Start. Shifting both bounds back by Days() leaves
// no gap and no overlap.
func (r DateRange) Previous() DateRange {
	n := r.Days()
	return DateRange{Start: r.Start.AddDays(-n), End: r.End.AddDays(-n)}
}

// Contains reports whether d falls inside the range, bounds included.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
