package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"investing_backend/internal/feature/investing/domain/entity"
)

// monthlySeries returns n monthly prices dated on day of each month starting at from,
// priced 100 * growth^i.
func monthlySeries(t *testing.T, from time.Time, day, n int, growth float64) entity.PriceSeries {
	t.Helper()

	points := make([]entity.PricePoint, n)
	for i := range n {
		d := time.Date(from.Year(), from.Month()+time.Month(i), day, 0, 0, 0, 0, time.UTC)
		points[i] = entity.PricePoint{Date: d, Price: 100 * math.Pow(growth, float64(i))}
	}
	s, err := entity.NewPriceSeries("TEST", points)
	require.NoError(t, err)
	return s
}
