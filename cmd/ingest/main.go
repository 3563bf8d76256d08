package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"investing_backend/internal/app/di"
	"investing_backend/internal/app/scheduler"
	candlesusecase "investing_backend/internal/feature/candles/usecase"
	symbollistadapters "investing_backend/internal/feature/symbollist/adapters"
	symbollistusecase "investing_backend/internal/feature/symbollist/usecase"
	"investing_backend/internal/platform/cache"
	infradb "investing_backend/internal/platform/db"
	infraredis "investing_backend/internal/platform/redis"
	"investing_backend/internal/shared/ratelimiter"
)

// runTimeout bounds one ingest run over every active symbol.
const runTimeout = 30 * time.Minute

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis is only needed to invalidate the server's cache after upserts.
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable; cached candles expire on their own")
		} else {
			rdb = tmp
			defer func() { _ = rdb.Close() }()
		}
	}

	market, err := di.NewMarket(di.MarketProviderFromEnv())
	if err != nil {
		slog.Error("failed to create market provider", "error", err)
		os.Exit(1)
	}

	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))
	ingestUC := candlesusecase.NewIngestUsecase(market, di.NewCandleRepository(db, rdb, cache.TTLFromEnv()), ratelimiter.NewFromEnv())

	run := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()

		if _, err := symbolUC.EnsureDefaults(ctx); err != nil {
			slog.Error("failed to seed symbols", "error", err)
			return
		}
		symbols, err := symbolUC.ActiveCodes(ctx)
		if err != nil {
			slog.Error("failed to load symbols", "error", err)
			return
		}
		failed, err := ingestUC.IngestAll(ctx, symbols)
		if err != nil {
			slog.Error("ingest aborted", "error", err, "failed", failed)
			return
		}
		slog.Info("ingest ok", "symbols", len(symbols), "failed", failed)
	}

	spec := os.Getenv("INGEST_CRON")
	if spec == "" {
		run(ctx)
		return
	}

	s, err := scheduler.New(ctx, spec, run)
	if err != nil {
		slog.Error("invalid INGEST_CRON", "error", err)
		os.Exit(1)
	}
	s.Start()
	<-ctx.Done()
	s.Stop()
}
