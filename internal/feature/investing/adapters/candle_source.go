// Package adapters connects the investing feature to the candle store.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"time"

	candleentity "investing_backend/internal/feature/candles/domain/entity"
	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/usecase"
)

// CandleHistory returns the stored monthly candles of a symbol in any order.
type CandleHistory interface {
	MonthlyHistory(ctx context.Context, symbol string) ([]candleentity.Candle, error)
}

// CandleSeriesSource builds price series from monthly candle opens.
type CandleSeriesSource struct {
	history CandleHistory
	now     func() time.Time
}

var _ usecase.PriceSource = (*CandleSeriesSource)(nil)

// NewCandleSeriesSource returns a PriceSource over history.
func NewCandleSeriesSource(history CandleHistory) *CandleSeriesSource {
	return &CandleSeriesSource{history: history, now: time.Now}
}

// FetchMonthly returns the monthly open prices of ticker in chronological order. Bars of the
// current month are dropped since the month is not complete yet.
func (s *CandleSeriesSource) FetchMonthly(ctx context.Context, ticker string) (entity.PriceSeries, error) {
	cs, err := s.history.MonthlyHistory(ctx, ticker)
	if err != nil {
		return entity.PriceSeries{}, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, ticker, err)
	}

	now := s.now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]entity.PricePoint, 0, len(cs))
	for _, c := range cs {
		t := c.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if !date.Before(currentMonth) || c.Open <= 0 {
			continue
		}
		points = append(points, entity.PricePoint{Date: date, Price: c.Open})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	points = dedupe(points)

	if len(points) == 0 {
		return entity.PriceSeries{}, fmt.Errorf("%w: %s has no completed months", domain.ErrDataUnavailable, ticker)
	}
	return entity.NewPriceSeries(ticker, points)
}

// dedupe keeps the first point of each date of a sorted slice.
func dedupe(points []entity.PricePoint) []entity.PricePoint {
	out := points[:0]
	for i, p := range points {
		if i > 0 && p.Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}
