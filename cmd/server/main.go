package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"investing_backend/internal/app/di"
	"investing_backend/internal/app/router"
	candleshandler "investing_backend/internal/feature/candles/transport/handler"
	candlesusecase "investing_backend/internal/feature/candles/usecase"
	investingadapters "investing_backend/internal/feature/investing/adapters"
	investinghandler "investing_backend/internal/feature/investing/transport/handler"
	investingusecase "investing_backend/internal/feature/investing/usecase"
	symbollistadapters "investing_backend/internal/feature/symbollist/adapters"
	symbollisthandler "investing_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "investing_backend/internal/feature/symbollist/usecase"
	"investing_backend/internal/platform/cache"
	infradb "investing_backend/internal/platform/db"
	healthhandler "investing_backend/internal/platform/http/handler"
	infraredis "investing_backend/internal/platform/redis"
	"investing_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis（任意）
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	candleRepo := di.NewCandleRepository(db, rdb, cache.TTLFromEnv())

	// Usecase
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	if n, err := symbolUC.EnsureDefaults(ctx); err != nil {
		slog.Warn("failed to seed symbols", "error", err)
	} else if n > 0 {
		slog.Info("seeded default symbols", "count", n)
	}

	var ingester candlesusecase.SymbolIngester
	if market, err := di.NewMarket(di.MarketProviderFromEnv()); err != nil {
		slog.Warn("market provider unavailable; serving stored candles only", "error", err)
	} else {
		ingester = candlesusecase.NewIngestUsecase(market, candleRepo, ratelimiter.NewFromEnv())
	}
	historyUC := candlesusecase.NewHistoryUsecase(candleRepo, ingester)
	distributionUC := investingusecase.NewDistributionUsecase(investingadapters.NewCandleSeriesSource(historyUC), nil)

	// Handler
	checks := []healthhandler.Check{{Name: "db", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, healthhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	handlers := router.Handlers{
		Candles:   candleshandler.NewCandlesHandler(historyUC),
		Investing: investinghandler.NewInvestingHandler(distributionUC),
		Symbols:   symbollisthandler.NewSymbolHandler(symbolUC),
		Ready:     healthhandler.Ready(2*time.Second, checks...),
	}

	// ルータ生成
	rcfg := router.LoadConfigFromEnv()
	if rcfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. API routes are public.")
	}
	r := router.NewRouter(rcfg, handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
