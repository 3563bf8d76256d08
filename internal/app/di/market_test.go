package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investing_backend/internal/platform/externalapi/twelvedata"
	"investing_backend/internal/platform/externalapi/yahoo"
)

func TestMarketProviderFromEnv(t *testing.T) {
	t.Setenv("MARKET_PROVIDER", "")
	assert.Equal(t, ProviderYahoo, MarketProviderFromEnv())

	t.Setenv("MARKET_PROVIDER", " TwelveData ")
	assert.Equal(t, ProviderTwelveData, MarketProviderFromEnv())
}

func TestNewMarket(t *testing.T) {
	t.Run("yahoo", func(t *testing.T) {
		m, err := NewMarket(ProviderYahoo)
		require.NoError(t, err)
		assert.IsType(t, &yahoo.YahooMarket{}, m)
	})

	t.Run("twelvedata without key", func(t *testing.T) {
		t.Setenv("TWELVE_DATA_API_KEY", "")
		_, err := NewMarket(ProviderTwelveData)
		assert.True(t, errors.Is(err, twelvedata.ErrMissingAPIKey))
	})

	t.Run("twelvedata", func(t *testing.T) {
		t.Setenv("TWELVE_DATA_API_KEY", "key")
		m, err := NewMarket(ProviderTwelveData)
		require.NoError(t, err)
		assert.IsType(t, &twelvedata.TwelveDataMarket{}, m)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewMarket("bloomberg")
		assert.Error(t, err)
	})
}
