// Package usecase implements the business logic of the investing feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/domain/strategy"
	"investing_backend/internal/feature/investing/engine"
)

// PriceSource fetches the monthly price history of a ticker, excluding the current month.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PriceSource interface {
	FetchMonthly(ctx context.Context, ticker string) (entity.PriceSeries, error)
}

// State is the configuration state of an InvestingModel.
type State int

const (
	StateEmpty State = iota
	StateTickerSet
	StateIntervalSet
	StateReady
)

func (s State) String() string {
	switch s {
	case StateTickerSet:
		return "ticker_set"
	case StateIntervalSet:
		return "interval_set"
	case StateReady:
		return "ready"
	default:
		return "empty"
	}
}

// InvestingModel holds the price series of one ticker and the analysis interval.
// It is used by a single request and is not safe for concurrent use.
type InvestingModel struct {
	source PriceSource
	calc   *engine.Calculator

	ticker   string
	series   *entity.PriceSeries
	interval *entity.Interval
}

// NewInvestingModel returns an empty model. A nil calc uses engine.NewCalculator().
func NewInvestingModel(source PriceSource, calc *engine.Calculator) *InvestingModel {
	if calc == nil {
		calc = engine.NewCalculator()
	}
	return &InvestingModel{source: source, calc: calc}
}

// SetTicker fetches and caches the price series of ticker. Setting the ticker that is already
// loaded is a no-op. A failed fetch leaves the model without a ticker.
func (m *InvestingModel) SetTicker(ctx context.Context, ticker string) error {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return fmt.Errorf("%w: empty ticker", domain.ErrInvalidParameter)
	}
	if m.series != nil && ticker == m.ticker {
		return nil
	}

	m.ticker, m.series = "", nil
	series, err := m.source.FetchMonthly(ctx, ticker)
	if err != nil {
		return err
	}
	m.ticker, m.series = ticker, &series
	return nil
}

// SetInterval overwrites the analysis interval.
func (m *InvestingModel) SetInterval(iv entity.Interval) error {
	iv, err := entity.NewInterval(iv.Begin, iv.End)
	if err != nil {
		return err
	}
	m.interval = &iv
	return nil
}

// SetIntervalYears sets the interval to [Jan 1 begin, Jan 1 end).
func (m *InvestingModel) SetIntervalYears(begin, end int) error {
	iv, err := entity.YearsInterval(begin, end)
	if err != nil {
		return err
	}
	m.interval = &iv
	return nil
}

// Ticker returns the loaded ticker, or "" when none is set.
func (m *InvestingModel) Ticker() string { return m.ticker }

// State reports which of ticker and interval are set.
func (m *InvestingModel) State() State {
	switch {
	case m.series != nil && m.interval != nil:
		return StateReady
	case m.series != nil:
		return StateTickerSet
	case m.interval != nil:
		return StateIntervalSet
	default:
		return StateEmpty
	}
}

// Timeseries returns the cached price series.
func (m *InvestingModel) Timeseries() (entity.PriceSeries, error) {
	if m.series == nil {
		return entity.PriceSeries{}, fmt.Errorf("%w: set a ticker first", domain.ErrNotConfigured)
	}
	return *m.series, nil
}

// Interval returns the analysis interval.
func (m *InvestingModel) Interval() (entity.Interval, error) {
	if m.interval == nil {
		return entity.Interval{}, fmt.Errorf("%w: set an interval first", domain.ErrNotConfigured)
	}
	return *m.interval, nil
}

// CalculateDistribution evaluates strat over every window of investingDuration inside the
// interval, buying every buyPeriod, and reports the gains in mode.
func (m *InvestingModel) CalculateDistribution(strat strategy.Strategy, investingDuration, buyPeriod engine.Step,
	mode engine.Mode) (entity.GainDistribution, error) {
	if m.series == nil {
		return entity.GainDistribution{}, fmt.Errorf("%w: set a ticker first", domain.ErrNotConfigured)
	}
	if m.interval == nil {
		return entity.GainDistribution{}, fmt.Errorf("%w: set an interval first", domain.ErrNotConfigured)
	}

	dist, err := m.calc.Calculate(*m.series, *m.interval, strat, buyPeriod, investingDuration)
	if err != nil {
		return entity.GainDistribution{}, err
	}
	return mode.Apply(dist, investingDuration)
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
