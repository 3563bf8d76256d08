// Package dto defines the JSON shapes of the investing endpoints.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TimeseriesPoint is one monthly price. Timestamp is in Unix seconds.
type TimeseriesPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// GainItem is the gain of one window. Timestamps are in Unix seconds.
type GainItem struct {
	TimestampStart int64   `json:"timestamp_start"`
	TimestampEnd   int64   `json:"timestamp_end"`
	Gain           float64 `json:"gain"`
}

// SummaryResponse describes the distribution of raw gain multipliers of one strategy.
type SummaryResponse struct {
	Count           int     `json:"count"`
	Mean            float64 `json:"mean"`
	StdDev          float64 `json:"std_dev"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	P5              float64 `json:"p5"`
	P25             float64 `json:"p25"`
	Median          float64 `json:"median"`
	P75             float64 `json:"p75"`
	P95             float64 `json:"p95"`
	LossProbability float64 `json:"loss_probability"`
}

// StrategyGains is the gain distribution of one named strategy.
type StrategyGains struct {
	Name  string
	Gains []GainItem
}

// DistributionResponse is the body of GET /distribution/:ticker.
//
// Each strategy is a top-level key holding its gains, after ticker and timeseries.
// Summaries is emitted only when non-nil.
type DistributionResponse struct {
	Ticker     string
	Timeseries []TimeseriesPoint
	Strategies []StrategyGains
	Summaries  map[string]SummaryResponse
}

// MarshalJSON writes the keys in order and fails when a strategy name collides with another key.
func (r DistributionResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	seen := map[string]bool{}
	n := 0
	write := func(key string, v any) error {
		if seen[key] {
			return fmt.Errorf("dto: duplicate response key %q", key)
		}
		seen[key] = true
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	// summaries は出力しない場合でも予約する
	seen["summaries"] = true
	buf.WriteByte('{')
	if err := write("ticker", r.Ticker); err != nil {
		return nil, err
	}
	if err := write("timeseries", r.Timeseries); err != nil {
		return nil, err
	}
	for _, sg := range r.Strategies {
		if err := write(sg.Name, sg.Gains); err != nil {
			return nil, err
		}
	}
	if r.Summaries != nil {
		delete(seen, "summaries")
		if err := write("summaries", r.Summaries); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TimeseriesResponse is the body of GET /timeseries/:ticker.
type TimeseriesResponse struct {
	Ticker     string            `json:"ticker"`
	Timeseries []TimeseriesPoint `json:"timeseries"`
}

// StrategiesResponse is the body of GET /strategies.
type StrategiesResponse struct {
	Strategies []string `json:"strategies"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
