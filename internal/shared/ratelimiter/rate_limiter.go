// Package ratelimiter は外部マーケットAPIへの呼び出し頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultPerMinute は Twelve Data 無料プランの上限（8回/分）です。
const DefaultPerMinute = 8

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で interval ごとに limit 回まで呼び出しを許可します。
// 複数のgoroutineから安全に使用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
	now       func() time.Time
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。limit <= 0 の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// NewFromEnv は INGEST_RATE_LIMIT（1分あたりの回数）からRateLimiterを生成します。
// 未設定または不正な値の場合は DefaultPerMinute を使用します。
func NewFromEnv() *RateLimiter {
	limit := DefaultPerMinute
	if s := os.Getenv("INGEST_RATE_LIMIT"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			limit = n
		} else {
			slog.Warn("invalid INGEST_RATE_LIMIT, using default", "value", s, "default", DefaultPerMinute)
		}
	}
	return NewRateLimiter(limit, time.Minute)
}

// reserve は呼び出し枠を確保し、待機が必要な時間を返します。
// lastReset は予約済みの未来のウィンドウを指すことがあり、その場合は開始時刻まで待機させます。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		// 次のウィンドウの先頭に枠を移す
		rl.count = 1
		rl.lastReset = rl.lastReset.Add(rl.interval)
	}

	if wait := rl.lastReset.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Wait はレートリミットの上限に達している場合、次のウィンドウまで待機します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}

	wait := rl.reserve()
	if wait <= 0 {
		return ctx.Err()
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
