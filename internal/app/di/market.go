// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"os"
	"strings"

	"investing_backend/internal/feature/candles/usecase"
	"investing_backend/internal/platform/externalapi/twelvedata"
	"investing_backend/internal/platform/externalapi/yahoo"
	infrahttp "investing_backend/internal/platform/http"
)

// Market provider names accepted in MARKET_PROVIDER.
const (
	ProviderYahoo      = "yahoo"
	ProviderTwelveData = "twelvedata"
)

// MarketProviderFromEnv returns MARKET_PROVIDER, defaulting to yahoo.
func MarketProviderFromEnv() string {
	p := strings.ToLower(strings.TrimSpace(os.Getenv("MARKET_PROVIDER")))
	if p == "" {
		return ProviderYahoo
	}
	return p
}

// NewMarket creates the market data client for provider with its configured HTTP client.
func NewMarket(provider string) (usecase.MarketRepository, error) {
	switch provider {
	case ProviderYahoo:
		cfg := yahoo.LoadConfig()
		return yahoo.NewYahooMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout, infrahttp.WithUserAgent("Mozilla/5.0"))), nil
	case ProviderTwelveData:
		cfg := twelvedata.LoadConfig()
		if cfg.TwelveDataAPIKey == "" {
			return nil, twelvedata.ErrMissingAPIKey
		}
		return twelvedata.NewTwelveDataMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout)), nil
	}
	return nil, fmt.Errorf("unknown market provider %q", provider)
}
