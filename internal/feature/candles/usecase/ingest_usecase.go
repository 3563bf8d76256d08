package usecase

import (
	"context"
	"log/slog"

	"investing_backend/internal/feature/candles/domain/entity"
	"investing_backend/internal/shared/ratelimiter"
)

const (
	// ingestOutputSize is the number of monthly bars requested per symbol, enough for the full history.
	ingestOutputSize = 5000
)

// MarketRepository fetches bars from an external market data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// IngestUsecase copies monthly history from the market provider into the candle store.
type IngestUsecase struct {
	market      MarketRepository
	candle      CandleRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

var _ SymbolIngester = (*IngestUsecase)(nil)

// NewIngestUsecase returns a new IngestUsecase.
func NewIngestUsecase(market MarketRepository, candle CandleRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, rateLimiter: rateLimiter}
}

// ingestOne fetches one symbol and interval and upserts the bars.
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string, outputsize int) error {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, interval, outputsize)
	if err != nil {
		return err
	}

	for i := range cs {
		cs[i].Symbol = symbol
		cs[i].Interval = interval
	}
	return iu.candle.UpsertBatch(ctx, cs)
}

// IngestSymbol loads the monthly history of symbol, waiting on the rate limiter first.
func (iu *IngestUsecase) IngestSymbol(ctx context.Context, symbol string) error {
	if err := iu.rateLimiter.Wait(ctx); err != nil {
		return err
	}
	return iu.ingestOne(ctx, symbol, entity.IntervalMonthly, ingestOutputSize)
}

// IngestAll loads the monthly history of every symbol. A failing symbol is logged and skipped;
// only context cancellation stops the run early. It returns the number of symbols that failed.
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) (int, error) {
	failed := 0
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		if err := iu.IngestSymbol(ctx, s); err != nil {
			slog.Error("failed to ingest data", "symbol", s, "interval", entity.IntervalMonthly, "error", err)
			failed++
			continue
		}
		slog.Info("ingested", "symbol", s)
	}
	return failed, nil
}
