package engine

import (
	"fmt"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/domain/strategy"
)

// Calculator evaluates a strategy over every window of an interval.
type Calculator struct {
	increment     Step
	indexSampling bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithIncrement sets the step between consecutive window begins. Defaults to one month.
func WithIncrement(increment Step) Option {
	return func(c *Calculator) { c.increment = increment }
}

// WithIndexSampling samples by series index instead of stepping dates. The buy period must then
// be a whole number of calendar months.
func WithIndexSampling() Option {
	return func(c *Calculator) { c.indexSampling = true }
}

// NewCalculator returns a Calculator with monthly increments and date sampling unless overridden.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{increment: Months(1)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate clamps interval to the coverage of series, partitions it into windows of
// investingDuration, samples every window with buyPeriod and applies strat to each sample.
// The result is in partition order, earliest window first. An interval too short for a single
// window gives an empty distribution, not an error.
func (c *Calculator) Calculate(series entity.PriceSeries, interval entity.Interval, strat strategy.Strategy,
	buyPeriod, investingDuration Step) (entity.GainDistribution, error) {
	if strat == nil {
		return entity.GainDistribution{}, fmt.Errorf("%w: nil strategy", domain.ErrInvalidParameter)
	}
	if _, err := entity.NewInterval(interval.Begin, interval.End); err != nil {
		return entity.GainDistribution{}, err
	}
	if series.IsEmpty() {
		return entity.GainDistribution{}, fmt.Errorf("%w: empty series %s", domain.ErrDataUnavailable, series.Ticker())
	}
	sampler, err := c.sampler(buyPeriod)
	if err != nil {
		return entity.GainDistribution{}, err
	}

	clamped, ok := interval.Clamp(series.First(), series.Last())
	if !ok {
		return entity.GainDistribution{}, fmt.Errorf("%w: %s has no prices in %s",
			domain.ErrDataUnavailable, series.Ticker(), interval)
	}

	windows, err := Partition(clamped, investingDuration, c.increment)
	if err != nil {
		return entity.GainDistribution{}, err
	}

	dist := entity.GainDistribution{Entries: make([]entity.WindowGain, 0, len(windows))}
	for _, w := range windows {
		samples, err := sampler.Sample(series, w)
		if err != nil {
			return entity.GainDistribution{}, err
		}
		gain, err := strat.Gain(Prices(samples))
		if err != nil {
			return entity.GainDistribution{}, fmt.Errorf("window %s: %w", w, err)
		}
		dist.Entries = append(dist.Entries, entity.WindowGain{Window: w, Gain: gain})
	}
	return dist, nil
}

func (c *Calculator) sampler(buyPeriod Step) (Sampler, error) {
	if err := buyPeriod.Validate(); err != nil {
		return nil, err
	}
	if !c.indexSampling {
		return DateSampler{Period: buyPeriod}, nil
	}
	cs, ok := buyPeriod.(CalendarStep)
	if !ok || cs.Days != 0 {
		return nil, fmt.Errorf("%w: index sampling needs a whole number of months", domain.ErrInvalidParameter)
	}
	return IndexSampler{Stride: cs.Years*12 + cs.Months}, nil
}
