package engine

import (
	"fmt"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
)

// Sampler picks the prices a strategy buys at inside one window.
type Sampler interface {
	Sample(series entity.PriceSeries, window entity.Interval) ([]entity.SampledPrice, error)
}

// DateSampler steps nominal dates from window.Begin by Period while they are <= window.End and
// aligns each to the first series entry dated on or after it. Dates past the end of the series
// fall back to the last entry.
type DateSampler struct {
	Period Step
}

var _ Sampler = DateSampler{}

// Sample implements Sampler.
func (s DateSampler) Sample(series entity.PriceSeries, window entity.Interval) ([]entity.SampledPrice, error) {
	if err := s.Period.Validate(); err != nil {
		return nil, err
	}
	if series.IsEmpty() {
		return nil, fmt.Errorf("%w: empty series %s", domain.ErrDataUnavailable, series.Ticker())
	}

	var out []entity.SampledPrice
	for date := window.Begin; !date.After(window.End); date = s.Period.AddTo(date) {
		i := series.SearchDate(date)
		if i == series.Len() {
			i--
		}
		p := series.At(i)
		out = append(out, entity.SampledPrice{Nominal: date, Date: p.Date, Price: p.Price})
	}
	return out, nil
}

// IndexSampler aligns window.Begin and window.End to series entries and takes every Stride-th
// entry between them. On a series with one entry per month and Stride n it matches a
// DateSampler with a period of n months.
type IndexSampler struct {
	Stride int
}

var _ Sampler = IndexSampler{}

// Sample implements Sampler.
func (s IndexSampler) Sample(series entity.PriceSeries, window entity.Interval) ([]entity.SampledPrice, error) {
	if s.Stride <= 0 {
		return nil, fmt.Errorf("%w: non-positive stride %d", domain.ErrInvalidParameter, s.Stride)
	}
	if series.IsEmpty() {
		return nil, fmt.Errorf("%w: empty series %s", domain.ErrDataUnavailable, series.Ticker())
	}

	last := series.Len() - 1
	begin := min(series.SearchDate(window.Begin), last)
	end := min(series.SearchDate(window.End), last)

	var out []entity.SampledPrice
	for i := begin; i <= end; i += s.Stride {
		p := series.At(i)
		out = append(out, entity.SampledPrice{Nominal: p.Date, Date: p.Date, Price: p.Price})
	}
	return out, nil
}

// Prices returns the price column of samples.
func Prices(samples []entity.SampledPrice) []float64 {
	out := make([]float64, len(samples))
	for i, sp := range samples {
		out[i] = sp.Price
	}
	return out
}
