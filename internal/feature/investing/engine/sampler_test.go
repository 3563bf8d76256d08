package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
)

func TestDateSampler_IncludesWindowEnd(t *testing.T) {
	t.Parallel()

	series := monthlySeries(t, date(1999, 1, 1), 1, 48, 1.01)
	window := entity.Interval{Begin: date(2000, 1, 1), End: date(2001, 1, 1)}

	samples, err := DateSampler{Period: Months(1)}.Sample(series, window)
	require.NoError(t, err)
	require.Len(t, samples, 13)
	assert.Equal(t, date(2000, 1, 1), samples[0].Date)
	assert.Equal(t, date(2001, 1, 1), samples[12].Date)
}

func TestDateSampler_AlignsToNextEntry(t *testing.T) {
	t.Parallel()

	series := monthlySeries(t, date(2000, 1, 1), 1, 24, 1.01)
	window := entity.Interval{Begin: date(2000, 1, 15), End: date(2000, 4, 15)}

	samples, err := DateSampler{Period: Months(1)}.Sample(series, window)
	require.NoError(t, err)
	require.Len(t, samples, 4)
	for i, sp := range samples {
		assert.Equal(t, date(2000, time.Month(2+i), 1), sp.Date)
		assert.Equal(t, date(2000, time.Month(1+i), 15), sp.Nominal)
		assert.False(t, sp.Date.Before(sp.Nominal))
	}
}

func TestDateSampler_PastEndUsesLastEntry(t *testing.T) {
	t.Parallel()

	series := monthlySeries(t, date(2000, 1, 1), 1, 6, 1.01)
	window := entity.Interval{Begin: date(2000, 4, 1), End: date(2000, 9, 1)}

	samples, err := DateSampler{Period: Months(1)}.Sample(series, window)
	require.NoError(t, err)
	require.Len(t, samples, 6)
	last := series.At(series.Len() - 1)
	for _, sp := range samples[2:] {
		assert.Equal(t, last.Date, sp.Date)
		assert.Equal(t, last.Price, sp.Price)
	}
}

func TestDateSampler_Idempotent(t *testing.T) {
	t.Parallel()

	series := monthlySeries(t, date(2000, 1, 3), 3, 36, 1.02)
	window := entity.Interval{Begin: date(2000, 1, 1), End: date(2002, 1, 1)}
	s := DateSampler{Period: Months(2)}

	first, err := s.Sample(series, window)
	require.NoError(t, err)
	second, err := s.Sample(series, window)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIndexSampler_MatchesDateSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		day    int
		stride int
	}{
		{"first of month, monthly", 1, 1},
		{"first of month, quarterly", 1, 3},
		{"second of month, quarterly", 2, 3},
		{"fifth of month, yearly", 5, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			series := monthlySeries(t, date(1999, 12, 1), tt.day, 80, 1.01)
			window := entity.Interval{Begin: date(2000, 1, 1), End: date(2005, 1, 1)}

			byDate, err := DateSampler{Period: Months(tt.stride)}.Sample(series, window)
			require.NoError(t, err)
			byIndex, err := IndexSampler{Stride: tt.stride}.Sample(series, window)
			require.NoError(t, err)

			assert.Equal(t, Prices(byDate), Prices(byIndex))
		})
	}
}

func TestSampler_Errors(t *testing.T) {
	t.Parallel()

	series := monthlySeries(t, date(2000, 1, 1), 1, 12, 1.01)
	window := entity.Interval{Begin: date(2000, 1, 1), End: date(2000, 6, 1)}

	_, err := DateSampler{Period: CalendarStep{}}.Sample(series, window)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = IndexSampler{Stride: 0}.Sample(series, window)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = DateSampler{Period: Months(1)}.Sample(entity.PriceSeries{}, window)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	_, err = IndexSampler{Stride: 1}.Sample(entity.PriceSeries{}, window)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}
