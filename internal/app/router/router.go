// Package router wires the HTTP handlers of every feature into one Gin engine.
package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candleshandler "investing_backend/internal/feature/candles/transport/handler"
	investinghandler "investing_backend/internal/feature/investing/transport/handler"
	symbollisthandler "investing_backend/internal/feature/symbollist/transport/handler"
	"investing_backend/internal/platform/http/handler"
	jwtmw "investing_backend/internal/platform/jwt"
)

// Config holds the router settings.
type Config struct {
	// JWTSecret enables bearer authentication on the API routes when set.
	JWTSecret string
	// AllowedOrigins restricts CORS. Empty allows every origin.
	AllowedOrigins []string
}

// LoadConfigFromEnv reads JWT_SECRET and CORS_ALLOWED_ORIGINS (comma separated).
func LoadConfigFromEnv() Config {
	cfg := Config{JWTSecret: os.Getenv(jwtmw.EnvKeyJWTSecret)}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Candles   *candleshandler.CandlesHandler
	Investing *investinghandler.InvestingHandler
	Symbols   *symbollisthandler.SymbolHandler
	Ready     gin.HandlerFunc
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	})
}

func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware(cfg.AllowedOrigins))

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready)
	}

	api := r.Group("/")
	// JWT_SECRET が設定されている場合のみ認証必須
	if cfg.JWTSecret != "" {
		api.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	}
	{
		api.GET("/symbols", h.Symbols.List)
		api.GET("/candles/:code", h.Candles.GetCandlesHandler)
		api.GET("/strategies", h.Investing.ListStrategies)
		api.GET("/timeseries/:ticker", h.Investing.GetTimeseries)
		api.GET("/distribution/:ticker", h.Investing.GetDistribution)
	}

	return r
}
