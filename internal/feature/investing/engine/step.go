// Package engine splits an analysis interval into investing windows, samples prices periodically
// inside each window and applies a strategy to every window.
package engine

import (
	"fmt"
	"time"

	"investing_backend/internal/feature/investing/domain"
)

// Approximate lengths used by FixedStep.
const (
	ApproxYear  = time.Duration(365.25 * 24 * float64(time.Hour))
	ApproxMonth = time.Duration(30.437 * 24 * float64(time.Hour))
)

// Step is a duration used for window length, window increment and buy period.
type Step interface {
	// AddTo returns t advanced by the step.
	AddTo(t time.Time) time.Time
	// Validate returns ErrInvalidParameter for zero or negative steps.
	Validate() error
	// InYears returns the step length expressed in (possibly fractional) years.
	InYears() float64
}

// CalendarStep is a calendar-aware duration. Adding one month to Jan 31 lands on the last day of
// February, adding one year to Feb 29 lands on Feb 28.
type CalendarStep struct {
	Years  int
	Months int
	Days   int
}

// Years returns a calendar step of n years.
func Years(n int) CalendarStep { return CalendarStep{Years: n} }

// Months returns a calendar step of n months.
func Months(n int) CalendarStep { return CalendarStep{Months: n} }

// Days returns a calendar step of n days.
func Days(n int) CalendarStep { return CalendarStep{Days: n} }

// AddTo adds years and months clamping the day of month, then adds days.
func (s CalendarStep) AddTo(t time.Time) time.Time {
	// time.Date normalizes the month, the first of the month always exists
	first := time.Date(t.Year()+s.Years, t.Month()+time.Month(s.Months), 1, 0, 0, 0, 0, t.Location())

	day := t.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	out := time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if s.Days != 0 {
		out = out.AddDate(0, 0, s.Days)
	}
	return out
}

// Validate implements Step.
func (s CalendarStep) Validate() error {
	if s.Years < 0 || s.Months < 0 || s.Days < 0 {
		return fmt.Errorf("%w: negative step %s", domain.ErrInvalidParameter, s)
	}
	if s.Years == 0 && s.Months == 0 && s.Days == 0 {
		return fmt.Errorf("%w: zero step", domain.ErrInvalidParameter)
	}
	return nil
}

// InYears implements Step.
func (s CalendarStep) InYears() float64 {
	return float64(s.Years) + float64(s.Months)/12 + float64(s.Days)/365.25
}

func (s CalendarStep) String() string {
	return fmt.Sprintf("%dy%dm%dd", s.Years, s.Months, s.Days)
}

// FixedStep is a fixed-length duration. With FixedYears/FixedMonths it approximates a year as
// 365.25 days and a month as 30.437 days, so window boundaries drift from calendar dates.
type FixedStep struct {
	D time.Duration
}

// FixedYears returns n approximate years.
func FixedYears(n int) FixedStep { return FixedStep{D: time.Duration(n) * ApproxYear} }

// FixedMonths returns n approximate months.
func FixedMonths(n int) FixedStep { return FixedStep{D: time.Duration(n) * ApproxMonth} }

// AddTo implements Step.
func (s FixedStep) AddTo(t time.Time) time.Time { return t.Add(s.D) }

// Validate implements Step.
func (s FixedStep) Validate() error {
	if s.D <= 0 {
		return fmt.Errorf("%w: non-positive step %s", domain.ErrInvalidParameter, s.D)
	}
	return nil
}

// InYears implements Step.
func (s FixedStep) InYears() float64 { return float64(s.D) / float64(ApproxYear) }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
