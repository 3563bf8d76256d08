package usecase

import (
	"context"
	"errors"
	"investing_backend/internal/feature/candles/domain/entity"
)

var (
	// ErrDB is a sentinel shared between mocks and expectations.
	ErrDB        = errors.New("database error")
	ErrMarketAPI = errors.New("market API error")
)

// mockCandleRepository is a mock implementation of CandleRepository.
type mockCandleRepository struct {
	FindFunc        func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	UpsertBatchFunc func(ctx context.Context, candles []entity.Candle) error
	FindCalls       int
}

func (m *mockCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	m.FindCalls++
	if m.FindFunc != nil {
		return m.FindFunc(ctx, symbol, interval, outputsize)
	}
	return nil, errors.New("FindFunc is not implemented")
}

func (m *mockCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, candles)
	}
	return errors.New("UpsertBatchFunc is not implemented")
}

// mockMarketRepository is a mock implementation of MarketRepository.
type mockMarketRepository struct {
	GetTimeSeriesFunc  func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	GetTimeSeriesCalls int
}

func (m *mockMarketRepository) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	m.GetTimeSeriesCalls++
	if m.GetTimeSeriesFunc != nil {
		return m.GetTimeSeriesFunc(ctx, symbol, interval, outputsize)
	}
	return nil, errors.New("GetTimeSeriesFunc is not implemented")
}

// mockRateLimiter returns immediately and counts calls.
type mockRateLimiter struct {
	WaitCalls int
}

func (m *mockRateLimiter) Wait(ctx context.Context) error {
	m.WaitCalls++
	return ctx.Err()
}

// mockIngester is a mock implementation of SymbolIngester.
type mockIngester struct {
	IngestSymbolFunc  func(ctx context.Context, symbol string) error
	IngestSymbolCalls int
}

func (m *mockIngester) IngestSymbol(ctx context.Context, symbol string) error {
	m.IngestSymbolCalls++
	if m.IngestSymbolFunc != nil {
		return m.IngestSymbolFunc(ctx, symbol)
	}
	return nil
}
