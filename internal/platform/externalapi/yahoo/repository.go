package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"investing_backend/internal/feature/candles/domain/entity"
	"investing_backend/internal/feature/candles/usecase"
)

// YahooMarket fetches monthly bars from the Yahoo Finance chart API.
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket returns a client using cfg and client.
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

func (y *YahooMarket) yahooSymbol(symbol string) string {
	if mapped, ok := y.cfg.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// chartResponse is the response structure of /v8/finance/chart.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta       chartMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// chartMeta carries the exchange zone. Bars are stamped at local midnight of the exchange.
type chartMeta struct {
	GMTOffset            int    `json:"gmtoffset"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
}

// location returns the exchange zone, falling back to the fixed GMT offset.
func (m chartMeta) location() *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if m.GMTOffset != 0 {
		return time.FixedZone("", m.GMTOffset)
	}
	return time.UTC
}

func at(xs []*float64, i int) float64 {
	if i >= len(xs) || xs[i] == nil {
		return 0
	}
	return *xs[i]
}

// yahooInterval maps the stored interval name to Yahoo's.
func yahooInterval(interval string) (string, error) {
	switch interval {
	case entity.IntervalMonthly:
		return "1mo", nil
	case "1day":
		return "1d", nil
	case "1week":
		return "1wk", nil
	}
	return "", fmt.Errorf("yahoo: unsupported interval %q", interval)
}

// GetTimeSeries returns the full history of symbol, oldest first, keeping at most the last outputsize bars.
// Monthly bars are stamped with the first day of their month, taken in the exchange's zone, at
// 00:00 UTC.
func (y *YahooMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	yi, err := yahooInterval(interval)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("interval", yi)
	q.Set("range", "max")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(y.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", res.StatusCode)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return []entity.Candle{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	loc := result.Meta.location()
	candles := make([]entity.Candle, 0, len(result.Timestamp))
	seen := make(map[time.Time]struct{}, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == 0 && c == 0 {
			continue // null bar
		}
		tm := time.Unix(ts, 0).In(loc)
		if interval == entity.IntervalMonthly {
			tm = time.Date(tm.Year(), tm.Month(), 1, 0, 0, 0, 0, time.UTC)
			// the chart API may append a partial bar for the running month
			if _, dup := seen[tm]; dup {
				continue
			}
			seen[tm] = struct{}{}
		}
		candles = append(candles, entity.Candle{
			Symbol:   symbol,
			Interval: interval,
			Time:     tm.UTC(),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			Volume:   int64(at(quote.Volume, i)),
		})
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	if outputsize > 0 && len(candles) > outputsize {
		candles = candles[len(candles)-outputsize:]
	}
	return candles, nil
}
