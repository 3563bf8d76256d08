// Package entity defines the domain models for the candles feature.
package entity

import "time"

// IntervalMonthly is the candle interval the investing analysis runs on.
const IntervalMonthly = "1month"

// Candle is one OHLCV bar of a ticker. Monthly bars start on the first trading day of the month.
type Candle struct {
	Symbol   string    // Ticker symbol (e.g., "AAPL", "^GSPC")
	Interval string    // Bar interval (e.g., "1month")
	Time     time.Time // Start of the bar period
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
}
