package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"investing_backend/internal/feature/investing/domain/entity"
)

// mockPriceSource is a PriceSource backed by fetchFn that counts calls per ticker.
type mockPriceSource struct {
	fetchFn func(ctx context.Context, ticker string) (entity.PriceSeries, error)
	calls   map[string]int
}

func (m *mockPriceSource) FetchMonthly(ctx context.Context, ticker string) (entity.PriceSeries, error) {
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[ticker]++
	return m.fetchFn(ctx, ticker)
}

// growthSeries returns monthly prices from 1990-01-01, priced 100 * growth^i.
func growthSeries(t *testing.T, ticker string, n int, growth float64) entity.PriceSeries {
	t.Helper()

	points := make([]entity.PricePoint, n)
	for i := range n {
		points[i] = entity.PricePoint{
			Date:  time.Date(1990, time.January+time.Month(i), 1, 0, 0, 0, 0, time.UTC),
			Price: 100 * math.Pow(growth, float64(i)),
		}
	}
	s, err := entity.NewPriceSeries(ticker, points)
	require.NoError(t, err)
	return s
}
