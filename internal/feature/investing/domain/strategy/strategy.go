// Package strategy provides the investing strategies evaluated over each window.
// A strategy turns the prices sampled in one window into a realized gain multiplier.
package strategy

import (
	"fmt"

	"investing_backend/internal/feature/investing/domain"
)

// Strategy maps an ordered, non-empty sequence of sampled prices to a gain multiplier.
// Implementations must be pure: no side effects and no state across calls.
type Strategy interface {
	Gain(prices []float64) (float64, error)
}

// StrategyFunc adapts an ordinary function to the Strategy interface.
type StrategyFunc func(prices []float64) (float64, error)

// Gain calls f(prices).
func (f StrategyFunc) Gain(prices []float64) (float64, error) {
	return f(prices)
}

var (
	// LumpSum invests everything at the first sample and realizes at the last one.
	LumpSum Strategy = StrategyFunc(lumpSumGain)
	// EqualStock buys an equal number of shares at every sample.
	EqualStock Strategy = StrategyFunc(equalStockGain)
	// DCA invests an equal amount of money at every sample (dollar-cost averaging).
	DCA Strategy = StrategyFunc(dcaGain)
)

func lumpSumGain(p []float64) (float64, error) {
	if err := checkPrices(p); err != nil {
		return 0, err
	}
	return p[len(p)-1] / p[0], nil
}

func equalStockGain(p []float64) (float64, error) {
	if err := checkPrices(p); err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range p {
		sum += x
	}
	return float64(len(p)) * p[len(p)-1] / sum, nil
}

func dcaGain(p []float64) (float64, error) {
	if err := checkPrices(p); err != nil {
		return 0, err
	}
	// (1/p)*p is not exactly 1 in floating point
	if len(p) == 1 {
		return 1, nil
	}
	var shares float64
	for _, x := range p {
		shares += 1 / x
	}
	return shares / float64(len(p)) * p[len(p)-1], nil
}

func checkPrices(p []float64) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: strategy applied to an empty price sequence", domain.ErrInvalidInput)
	}
	for i, x := range p {
		if x <= 0 {
			return fmt.Errorf("%w: non-positive price %v at sample %d", domain.ErrInvalidInput, x, i)
		}
	}
	return nil
}
