package usecase

import (
	"context"
	"fmt"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/domain/strategy"
	"investing_backend/internal/feature/investing/engine"
)

// DefaultBuyPeriodMonths is the buy period used when a request does not set one.
const DefaultBuyPeriodMonths = 1

// DistributionRequest describes one analysis: every window of InvestingYears between StartYear
// and EndYear, evaluated with every registered strategy.
type DistributionRequest struct {
	Ticker          string
	StartYear       int
	EndYear         int
	InvestingYears  int
	BuyPeriodMonths int // 0 means DefaultBuyPeriodMonths
	Mode            engine.Mode
	FixedLength     bool // approximate years and months with fixed-length durations
	Summary         bool
}

// StrategyResult is the distribution of one strategy.
type StrategyResult struct {
	Name         string
	Distribution entity.GainDistribution
	Summary      *entity.Summary
}

// DistributionResult is the answer to a DistributionRequest.
type DistributionResult struct {
	Ticker     string
	Interval   entity.Interval
	Timeseries entity.PriceSeries
	Strategies []StrategyResult
}

// DistributionUsecase runs analyses against a PriceSource.
type DistributionUsecase struct {
	source     PriceSource
	strategies *strategy.Registry
}

// NewDistributionUsecase returns a usecase. A nil registry uses strategy.DefaultRegistry().
func NewDistributionUsecase(source PriceSource, strategies *strategy.Registry) *DistributionUsecase {
	if strategies == nil {
		strategies = strategy.DefaultRegistry()
	}
	return &DistributionUsecase{source: source, strategies: strategies}
}

// StrategyNames returns the names of the strategies every analysis runs.
func (u *DistributionUsecase) StrategyNames() []string {
	return u.strategies.Names()
}

// Timeseries returns the monthly price series of ticker.
func (u *DistributionUsecase) Timeseries(ctx context.Context, ticker string) (entity.PriceSeries, error) {
	model := NewInvestingModel(u.source, nil)
	if err := model.SetTicker(ctx, ticker); err != nil {
		return entity.PriceSeries{}, err
	}
	return model.Timeseries()
}

// Calculate loads the ticker once and computes one distribution per registered strategy.
func (u *DistributionUsecase) Calculate(ctx context.Context, req DistributionRequest) (*DistributionResult, error) {
	if req.InvestingYears <= 0 {
		return nil, fmt.Errorf("%w: investing_years must be positive", domain.ErrInvalidParameter)
	}
	buyMonths := req.BuyPeriodMonths
	if buyMonths == 0 {
		buyMonths = DefaultBuyPeriodMonths
	}
	if buyMonths < 0 {
		return nil, fmt.Errorf("%w: buy period must be positive", domain.ErrInvalidParameter)
	}

	var duration, buyPeriod, increment engine.Step = engine.Years(req.InvestingYears), engine.Months(buyMonths), engine.Months(1)
	if req.FixedLength {
		duration, buyPeriod, increment = engine.FixedYears(req.InvestingYears), engine.FixedMonths(buyMonths), engine.FixedMonths(1)
	}

	model := NewInvestingModel(u.source, engine.NewCalculator(engine.WithIncrement(increment)))
	if err := model.SetIntervalYears(req.StartYear, req.EndYear); err != nil {
		return nil, err
	}
	if err := model.SetTicker(ctx, req.Ticker); err != nil {
		return nil, err
	}
	series, err := model.Timeseries()
	if err != nil {
		return nil, err
	}

	iv, err := model.Interval()
	if err != nil {
		return nil, err
	}
	res := &DistributionResult{Ticker: model.Ticker(), Interval: iv, Timeseries: series}
	err = u.strategies.Each(func(name string, s strategy.Strategy) error {
		raw, err := model.CalculateDistribution(s, duration, buyPeriod, engine.ModeGain)
		if err != nil {
			return fmt.Errorf("strategy %s: %w", name, err)
		}
		out, err := req.Mode.Apply(raw, duration)
		if err != nil {
			return err
		}
		sr := StrategyResult{Name: name, Distribution: out}
		if req.Summary {
			sum := engine.Summarize(raw)
			sr.Summary = &sum
		}
		res.Strategies = append(res.Strategies, sr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
