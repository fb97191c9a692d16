package facility

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for range bounds, matching the scan UI's
// /{start}/{end} path segments.
const DateFormat = "2006-01-02"

// DateRange is a closed calendar-date interval. Both bounds are inclusive:
// an event on the end date itself is in range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two calendar dates. Start after end is
// a caller error, never an empty result.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidRange, start.Format(DateFormat), end.Format(DateFormat))
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into a DateRange.
// Unparseable dates are reported as ErrInvalidRange too: the caller sent a
// range we cannot interpret.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: bad start date %q", ErrInvalidRange, start)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: bad end date %q", ErrInvalidRange, end)
	}
	return NewDateRange(s, e)
}

// Contains reports whether t falls on a date within the interval.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateToDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// truncateToDate reduces an instant to its UTC calendar date. Events are
// normalized to UTC first so every store assigns an offset-carrying time
// to the same day.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
