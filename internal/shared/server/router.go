package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/telemetry"
)

const (
	rateGroupAnalyze = "ANALYZE"
	rateGroupOpen    = "OPEN"
)

// Deps are the handlers the router serves.
type Deps struct {
	Config   config.Config
	Logger   *zap.Logger
	Analyses *analyses.Handler
	Health   *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	logger := telemetry.OrNop(deps.Logger)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Config.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupAnalyze: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
			DefaultGroup: rateGroupAnalyze,
			GroupFor: func(c *gin.Context) string {
				switch c.Request.URL.Path {
				case "/health", "/metrics":
					return rateGroupOpen
				}
				return rateGroupAnalyze
			},
		}))
	}

	if deps.Health != nil {
		deps.Health.RegisterRoutes(r)
	}
	r.GET("/metrics", metrics.Handler())
	if deps.Analyses != nil {
		deps.Analyses.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
