package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"investing_backend/internal/feature/investing/domain/entity"
)

// Summarize describes a distribution of gain multipliers. An empty distribution gives a zero Summary.
func Summarize(d entity.GainDistribution) entity.Summary {
	gains := d.Gains()
	if len(gains) == 0 {
		return entity.Summary{}
	}
	sort.Float64s(gains)

	mean, std := stat.MeanStdDev(gains, nil)
	if len(gains) < 2 {
		std = 0
	}
	losses := sort.SearchFloat64s(gains, 1)

	return entity.Summary{
		Count:           len(gains),
		Mean:            mean,
		StdDev:          std,
		Min:             gains[0],
		Max:             gains[len(gains)-1],
		P5:              stat.Quantile(0.05, stat.Empirical, gains, nil),
		P25:             stat.Quantile(0.25, stat.Empirical, gains, nil),
		Median:          stat.Quantile(0.5, stat.Empirical, gains, nil),
		P75:             stat.Quantile(0.75, stat.Empirical, gains, nil),
		P95:             stat.Quantile(0.95, stat.Empirical, gains, nil),
		LossProbability: float64(losses) / float64(len(gains)),
	}
}
