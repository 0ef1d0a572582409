package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Year returns the range of the calendar year.
func Year(year int) Range {
	return Range{From: New(year, time.January, 1), To: New(year, time.December, 31)}
}

// Month returns the range of a calendar month.
func Month(year int, month time.Month) Range {
	return NewRange(New(year, month, 1), Monthly)
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// IsEmpty reports whether the range contains no day at all.
func (r Range) IsEmpty() bool { return r.To.Before(r.From) }

// Days returns the number of days in the range, boundaries included, or 0 if empty.
func (r Range) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// Intersect returns the days common to both ranges. The result may be empty.
func (r Range) Intersect(x Range) Range {
	out := r
	if x.From.After(out.From) {
		out.From = x.From
	}
	if x.To.Before(out.To) {
		out.To = x.To
	}
	return out
}

func (r Range) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return fmt.Sprintf("%s → %s", r.From, r.To)
}
