package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	googleauth "waitlist-backend/internal/auth"
	"waitlist-backend/internal/documents"
	"waitlist-backend/internal/shared/config"
	"waitlist-backend/internal/shared/metrics"
	"waitlist-backend/internal/shared/server/middleware"
	"waitlist-backend/internal/shared/server/respond"
	"waitlist-backend/internal/waitlist"
)

// RouterDeps carries everything the router needs, pre-constructed by the
// caller so tests can substitute fakes.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	WaitlistHandler  *waitlist.Handler
	GoogleAuth       *googleauth.GoogleService
	Redis            *redis.Client
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RedisRateLimit(deps.Redis, cfg.RateLimitRPS, cfg.RateLimitBurst, time.Minute))
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	api.GET("/me", middleware.RequireAuth(), meHandler)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.WaitlistHandler != nil {
		deps.WaitlistHandler.RegisterRoutes(api)
	}

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
