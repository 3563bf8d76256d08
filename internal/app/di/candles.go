package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"investing_backend/internal/feature/candles/adapters"
	"investing_backend/internal/feature/candles/usecase"
	"investing_backend/internal/platform/cache"
)

// NewCandleRepository creates the candle store.
// If Redis is available, reads go through a Redis cache whose entries expire with ttl
// (0 means at the next month boundary). Otherwise it uses the database directly.
func NewCandleRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.CandleRepository {
	repo := adapters.NewCandleRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingCandleRepository(rdb, ttl, repo, "candles")
}
