package entity

import (
	"fmt"
	"sort"
	"time"

	"investing_backend/internal/feature/investing/domain"
)

// PricePoint is one entry of a price series.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// SampledPrice is a price picked by the sampler for a nominal sample date.
// Date is the series date the nominal date was aligned to.
type SampledPrice struct {
	Nominal time.Time
	Date    time.Time
	Price   float64
}

// PriceSeries is an immutable, strictly increasing by date price history of one ticker.
type PriceSeries struct {
	ticker string
	points []PricePoint
}

// NewPriceSeries validates that points are strictly increasing by date and copies them.
func NewPriceSeries(ticker string, points []PricePoint) (PriceSeries, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			return PriceSeries{}, fmt.Errorf("%w: series %s not strictly increasing at %s",
				domain.ErrInvalidParameter, ticker, points[i].Date.Format(time.DateOnly))
		}
	}
	cp := make([]PricePoint, len(points))
	copy(cp, points)
	return PriceSeries{ticker: ticker, points: cp}, nil
}

// Ticker returns the ticker the series belongs to.
func (s PriceSeries) Ticker() string { return s.ticker }

// Len returns the number of points.
func (s PriceSeries) Len() int { return len(s.points) }

// IsEmpty reports whether the series has no points.
func (s PriceSeries) IsEmpty() bool { return len(s.points) == 0 }

// At returns the i-th point.
func (s PriceSeries) At(i int) PricePoint { return s.points[i] }

// First returns the earliest date. The series must not be empty.
func (s PriceSeries) First() time.Time { return s.points[0].Date }

// Last returns the latest date. The series must not be empty.
func (s PriceSeries) Last() time.Time { return s.points[len(s.points)-1].Date }

// Points returns a copy of the points in chronological order.
func (s PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// SearchDate returns the leftmost index at which date could be inserted keeping the index
// sorted, i.e. the first entry whose date is >= date. It returns Len() when date is after Last().
func (s PriceSeries) SearchDate(date time.Time) int {
	return sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(date)
	})
}
