// Package entity defines the domain models for the investing feature.
package entity

import (
	"fmt"
	"time"

	"investing_backend/internal/feature/investing/domain"
)

// Interval is a date range [Begin, End). Windows produced by the partitioner are Intervals too.
type Interval struct {
	Begin time.Time
	End   time.Time
}

// NewInterval returns the interval [begin, end) or ErrInvalidParameter when begin is after end.
func NewInterval(begin, end time.Time) (Interval, error) {
	if begin.After(end) {
		return Interval{}, fmt.Errorf("%w: interval begin %s is after end %s",
			domain.ErrInvalidParameter, begin.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return Interval{Begin: begin, End: end}, nil
}

// YearsInterval returns [Jan 1 beginYear, Jan 1 endYear) in UTC.
func YearsInterval(beginYear, endYear int) (Interval, error) {
	return NewInterval(
		time.Date(beginYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(endYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
}

// Span returns End - Begin.
func (iv Interval) Span() time.Duration {
	return iv.End.Sub(iv.Begin)
}

// Clamp narrows the interval to [max(Begin, first), min(End, last)].
// ok is false when the two ranges do not overlap.
func (iv Interval) Clamp(first, last time.Time) (Interval, bool) {
	out := iv
	if first.After(out.Begin) {
		out.Begin = first
	}
	if last.Before(out.End) {
		out.End = last
	}
	if out.Begin.After(out.End) {
		return Interval{}, false
	}
	return out, true
}

// String formats the interval as "2000-01-01/2005-01-01".
func (iv Interval) String() string {
	return iv.Begin.Format(time.DateOnly) + "/" + iv.End.Format(time.DateOnly)
}
