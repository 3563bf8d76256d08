package cache

import (
	"log/slog"
	"os"
	"time"
)

// TimeUntilNextMonth returns the time left until 00:00 UTC on the first day of the month after now.
func TimeUntilNextMonth(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}

// TTLFromEnv parses CACHE_TTL (e.g. "6h"). Unset or invalid values return 0, which expires
// entries at the next month boundary.
func TTLFromEnv() time.Duration {
	s := os.Getenv("CACHE_TTL")
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		slog.Warn("invalid CACHE_TTL, using month boundary", "value", s)
		return 0
	}
	return d
}
