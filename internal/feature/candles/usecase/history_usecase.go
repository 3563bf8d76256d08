// Package usecase implements the business logic of the candles feature.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"investing_backend/internal/feature/candles/domain/entity"
)

// CandleRepository abstracts the candle store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CandleRepository interface {
	// Find returns the newest outputsize candles, newest first. 0 returns the whole history.
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// SymbolIngester loads the monthly history of one symbol into the store.
type SymbolIngester interface {
	IngestSymbol(ctx context.Context, symbol string) error
}

// HistoryUsecase serves the full monthly history of a symbol from the store, ingesting it from
// the market provider on first use.
type HistoryUsecase struct {
	candle   CandleRepository
	ingester SymbolIngester
}

// NewHistoryUsecase returns a HistoryUsecase. A nil ingester disables read-through.
func NewHistoryUsecase(candle CandleRepository, ingester SymbolIngester) *HistoryUsecase {
	return &HistoryUsecase{candle: candle, ingester: ingester}
}

// MonthlyHistory returns every stored monthly candle of symbol, newest first.
func (hu *HistoryUsecase) MonthlyHistory(ctx context.Context, symbol string) ([]entity.Candle, error) {
	cs, err := hu.candle.Find(ctx, symbol, entity.IntervalMonthly, 0)
	if err != nil {
		return nil, err
	}
	if len(cs) > 0 {
		return cs, nil
	}
	if hu.ingester == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCandles, symbol)
	}

	slog.Info("no stored candles, ingesting", "symbol", symbol)
	if err := hu.ingester.IngestSymbol(ctx, symbol); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoCandles, symbol, err)
	}
	cs, err = hu.candle.Find(ctx, symbol, entity.IntervalMonthly, 0)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCandles, symbol)
	}
	return cs, nil
}
