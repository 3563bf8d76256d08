package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/engine"
	"investing_backend/internal/feature/investing/usecase"
)

// mockDistributionUsecase is a DistributionUsecase whose methods delegate to the func fields.
type mockDistributionUsecase struct {
	CalculateFunc  func(ctx context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error)
	TimeseriesFunc func(ctx context.Context, ticker string) (entity.PriceSeries, error)
	lastRequest    usecase.DistributionRequest
}

func (m *mockDistributionUsecase) Calculate(ctx context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error) {
	m.lastRequest = req
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, req)
	}
	return &usecase.DistributionResult{}, nil
}

func (m *mockDistributionUsecase) Timeseries(ctx context.Context, ticker string) (entity.PriceSeries, error) {
	if m.TimeseriesFunc != nil {
		return m.TimeseriesFunc(ctx, ticker)
	}
	return entity.PriceSeries{}, nil
}

func (m *mockDistributionUsecase) StrategyNames() []string {
	return []string{"lump_sum", "equal_stock", "dca"}
}

func newRouter(uc DistributionUsecase) *gin.Engine {
	h := NewInvestingHandler(uc)
	r := gin.New()
	r.GET("/distribution/:ticker", h.GetDistribution)
	r.GET("/timeseries/:ticker", h.GetTimeseries)
	r.GET("/strategies", h.ListStrategies)
	return r
}

func day(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func testSeries(t *testing.T) entity.PriceSeries {
	t.Helper()
	s, err := entity.NewPriceSeries("SPY", []entity.PricePoint{
		{Date: day(2000, time.January), Price: 100},
		{Date: day(2000, time.February), Price: 110},
	})
	require.NoError(t, err)
	return s
}

func TestNewInvestingHandler(t *testing.T) {
	t.Parallel()

	h := NewInvestingHandler(&mockDistributionUsecase{})
	assert.NotNil(t, h)
	assert.NotNil(t, h.uc)
}

func TestInvestingHandler_GetDistribution(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jan, feb := day(2000, time.January), day(2000, time.February)
	window := entity.Interval{Begin: jan, End: feb}

	tests := []struct {
		name           string
		query          string
		calculateFunc  func(ctx context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "success: one entry per strategy",
			query: "?start_year=2000&end_year=2010&investing_years=5",
			calculateFunc: func(_ context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return &usecase.DistributionResult{
					Ticker:     "SPY",
					Timeseries: testSeries(t),
					Strategies: []usecase.StrategyResult{
						{Name: "lump_sum", Distribution: entity.GainDistribution{Entries: []entity.WindowGain{{Window: window, Gain: 1.1}}}},
						{Name: "dca", Distribution: entity.GainDistribution{Entries: []entity.WindowGain{{Window: window, Gain: 1.05}}}},
					},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{
				"ticker": "SPY",
				"timeseries": [{"timestamp": %d, "value": 100}, {"timestamp": %d, "value": 110}],
				"lump_sum": [{"timestamp_start": %d, "timestamp_end": %d, "gain": 1.1}],
				"dca": [{"timestamp_start": %d, "timestamp_end": %d, "gain": 1.05}]
			}`, jan.Unix(), feb.Unix(), jan.Unix(), feb.Unix(), jan.Unix(), feb.Unix()),
		},
		{
			name:  "success: summaries included on request",
			query: "?start_year=2000&end_year=2010&investing_years=5&summary=true",
			calculateFunc: func(_ context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return &usecase.DistributionResult{
					Ticker:     "SPY",
					Timeseries: entity.PriceSeries{},
					Strategies: []usecase.StrategyResult{{
						Name:         "lump_sum",
						Distribution: entity.GainDistribution{},
						Summary:      &entity.Summary{Count: 1, Mean: 1.5, Min: 1.5, Max: 1.5, P5: 1.5, P25: 1.5, Median: 1.5, P75: 1.5, P95: 1.5},
					}},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"ticker": "SPY",
				"timeseries": [],
				"lump_sum": [],
				"summaries": {"lump_sum": {"count": 1, "mean": 1.5, "std_dev": 0, "min": 1.5, "max": 1.5,
					"p5": 1.5, "p25": 1.5, "median": 1.5, "p75": 1.5, "p95": 1.5, "loss_probability": 0}}
			}`,
		},
		{
			name:  "failure: strategy name collides with a response key",
			query: "?start_year=2000&end_year=2010&investing_years=5",
			calculateFunc: func(context.Context, usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return &usecase.DistributionResult{
					Ticker:     "SPY",
					Timeseries: testSeries(t),
					Strategies: []usecase.StrategyResult{{Name: "ticker", Distribution: entity.GainDistribution{}}},
				}, nil
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error": "failed to encode response"}`,
		},
		{
			name:           "failure: missing start_year",
			query:          "?end_year=2010&investing_years=5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "start_year is required"}`,
		},
		{
			name:           "failure: non-numeric investing_years",
			query:          "?start_year=2000&end_year=2010&investing_years=five",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "investing_years must be an integer"}`,
		},
		{
			name:           "failure: unknown durations",
			query:          "?start_year=2000&end_year=2010&investing_years=5&durations=lunar",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "durations must be calendar or fixed"}`,
		},
		{
			name:           "failure: unknown mode",
			query:          "?start_year=2000&end_year=2010&investing_years=5&mode=log",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid parameter: unknown mode \"log\""}`,
		},
		{
			name:  "failure: invalid parameter from usecase",
			query: "?start_year=2010&end_year=2000&investing_years=5",
			calculateFunc: func(context.Context, usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return nil, fmt.Errorf("%w: begin after end", domain.ErrInvalidParameter)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid parameter: begin after end"}`,
		},
		{
			name:  "failure: data unavailable",
			query: "?start_year=2000&end_year=2010&investing_years=5",
			calculateFunc: func(context.Context, usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return nil, domain.ErrDataUnavailable
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error": "price data unavailable"}`,
		},
		{
			name:  "failure: upstream error",
			query: "?start_year=2000&end_year=2010&investing_years=5",
			calculateFunc: func(context.Context, usecase.DistributionRequest) (*usecase.DistributionResult, error) {
				return nil, errors.New("provider timeout")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error": "provider timeout"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockDistributionUsecase{CalculateFunc: tt.calculateFunc})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/distribution/SPY"+tt.query, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestInvestingHandler_GetDistribution_ParsesRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockDistributionUsecase{}
	r := newRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/distribution/qqq?start_year=1995&end_year=2020&investing_years=10&buy_period_months=3&mode=annualized&durations=fixed&summary=true", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.DistributionRequest{
		Ticker:          "qqq",
		StartYear:       1995,
		EndYear:         2020,
		InvestingYears:  10,
		BuyPeriodMonths: 3,
		Mode:            engine.ModeAnnualized,
		FixedLength:     true,
		Summary:         true,
	}, uc.lastRequest)
}

func TestInvestingHandler_GetTimeseries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		timeseriesFunc func(ctx context.Context, ticker string) (entity.PriceSeries, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			timeseriesFunc: func(context.Context, string) (entity.PriceSeries, error) {
				return testSeries(t), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{"ticker": "SPY", "timeseries": [{"timestamp": %d, "value": 100}, {"timestamp": %d, "value": 110}]}`,
				day(2000, time.January).Unix(), day(2000, time.February).Unix()),
		},
		{
			name: "failure: empty ticker",
			timeseriesFunc: func(context.Context, string) (entity.PriceSeries, error) {
				return entity.PriceSeries{}, fmt.Errorf("%w: empty ticker", domain.ErrInvalidParameter)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid parameter: empty ticker"}`,
		},
		{
			name: "failure: not configured",
			timeseriesFunc: func(context.Context, string) (entity.PriceSeries, error) {
				return entity.PriceSeries{}, domain.ErrNotConfigured
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error": "investing model not configured"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockDistributionUsecase{TimeseriesFunc: tt.timeseriesFunc})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timeseries/SPY", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestInvestingHandler_ListStrategies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := newRouter(&mockDistributionUsecase{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/strategies", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"strategies": ["lump_sum", "equal_stock", "dca"]}`, w.Body.String())
}
