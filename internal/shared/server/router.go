package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtailor/internal/generate"
	"jobtailor/internal/profiles"
	"jobtailor/internal/services/health"
	"jobtailor/internal/shared/config"
	"jobtailor/internal/shared/metrics"
	"jobtailor/internal/shared/server/middleware"
	"jobtailor/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	ProfileHandler  *profiles.Handler
	GenerateHandler *generate.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	deps.ProfileHandler.RegisterRoutes(api)
	deps.GenerateHandler.RegisterRoutes(api)

	// Generation fans out into several LLM calls per request, so it gets its
	// own token bucket.
	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), middleware.RateLimitRule{
		Rate:  0.2,
		Burst: 3,
	}))
	deps.GenerateHandler.RegisterGenerateRoute(limited)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
