// Package handler provides the HTTP handlers of the investing feature.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"investing_backend/internal/feature/investing/domain"
	"investing_backend/internal/feature/investing/domain/entity"
	"investing_backend/internal/feature/investing/engine"
	"investing_backend/internal/feature/investing/transport/http/dto"
	"investing_backend/internal/feature/investing/usecase"
)

// DistributionUsecase is the usecase the handler drives.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DistributionUsecase interface {
	Calculate(ctx context.Context, req usecase.DistributionRequest) (*usecase.DistributionResult, error)
	Timeseries(ctx context.Context, ticker string) (entity.PriceSeries, error)
	StrategyNames() []string
}

// InvestingHandler serves timeseries and gain distributions.
type InvestingHandler struct {
	uc DistributionUsecase
}

// NewInvestingHandler returns a handler over uc.
func NewInvestingHandler(uc DistributionUsecase) *InvestingHandler {
	return &InvestingHandler{uc: uc}
}

// GetDistribution runs every strategy over the windows of a ticker's history.
//
// GET /distribution/:ticker?start_year=2000&end_year=2010&investing_years=5
//
// Optional: buy_period_months (default 1), mode (gain|percentage|annualized|annualized_percentage),
// durations (calendar|fixed), summary (true|false).
func (h *InvestingHandler) GetDistribution(c *gin.Context) {
	req, err := parseDistributionRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.uc.Calculate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	body := dto.DistributionResponse{
		Ticker:     res.Ticker,
		Timeseries: toTimeseries(res.Timeseries),
		Strategies: make([]dto.StrategyGains, 0, len(res.Strategies)),
	}
	if req.Summary {
		body.Summaries = map[string]dto.SummaryResponse{}
	}
	for _, sr := range res.Strategies {
		body.Strategies = append(body.Strategies, dto.StrategyGains{Name: sr.Name, Gains: toGains(sr.Distribution)})
		if body.Summaries != nil && sr.Summary != nil {
			body.Summaries[sr.Name] = toSummary(*sr.Summary)
		}
	}
	b, err := json.Marshal(body)
	if err != nil {
		slog.Error("encode distribution failed", "ticker", res.Ticker, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to encode response"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// GetTimeseries returns the monthly prices of a ticker.
//
// GET /timeseries/:ticker
func (h *InvestingHandler) GetTimeseries(c *gin.Context) {
	series, err := h.uc.Timeseries(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TimeseriesResponse{Ticker: series.Ticker(), Timeseries: toTimeseries(series)})
}

// ListStrategies returns the strategy names used by GetDistribution.
//
// GET /strategies
func (h *InvestingHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StrategiesResponse{Strategies: h.uc.StrategyNames()})
}

func parseDistributionRequest(c *gin.Context) (usecase.DistributionRequest, error) {
	req := usecase.DistributionRequest{Ticker: c.Param("ticker")}

	var err error
	if req.StartYear, err = requiredInt(c, "start_year"); err != nil {
		return req, err
	}
	if req.EndYear, err = requiredInt(c, "end_year"); err != nil {
		return req, err
	}
	if req.InvestingYears, err = requiredInt(c, "investing_years"); err != nil {
		return req, err
	}
	if s := c.Query("buy_period_months"); s != "" {
		if req.BuyPeriodMonths, err = strconv.Atoi(s); err != nil {
			return req, fmt.Errorf("buy_period_months must be an integer")
		}
	}
	if req.Mode, err = engine.ParseMode(c.Query("mode")); err != nil {
		return req, err
	}
	switch c.DefaultQuery("durations", "calendar") {
	case "calendar":
	case "fixed":
		req.FixedLength = true
	default:
		return req, fmt.Errorf("durations must be calendar or fixed")
	}
	req.Summary = c.Query("summary") == "true"
	return req, nil
}

func requiredInt(c *gin.Context, key string) (int, error) {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// writeError maps domain error kinds to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, domain.ErrInvalidParameter), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDataUnavailable):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotConfigured):
		status = http.StatusConflict
	default:
		slog.Error("investing request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func toTimeseries(s entity.PriceSeries) []dto.TimeseriesPoint {
	out := make([]dto.TimeseriesPoint, 0, s.Len())
	for _, p := range s.Points() {
		out = append(out, dto.TimeseriesPoint{Timestamp: p.Date.Unix(), Value: p.Price})
	}
	return out
}

func toGains(d entity.GainDistribution) []dto.GainItem {
	out := make([]dto.GainItem, 0, d.Len())
	for _, e := range d.Entries {
		out = append(out, dto.GainItem{
			TimestampStart: e.Window.Begin.Unix(),
			TimestampEnd:   e.Window.End.Unix(),
			Gain:           e.Gain,
		})
	}
	return out
}

func toSummary(s entity.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		Count:           s.Count,
		Mean:            s.Mean,
		StdDev:          s.StdDev,
		Min:             s.Min,
		Max:             s.Max,
		P5:              s.P5,
		P25:             s.P25,
		Median:          s.Median,
		P75:             s.P75,
		P95:             s.P95,
		LossProbability: s.LossProbability,
	}
}
