package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/handler"
	"github.com/akarev/activity-signup/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check, the Prometheus metrics endpoint and the gateway token
// exchange.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/v1/auth/token", a.IssueToken)
}

// RegisterParticipant registers the participant-facing routes under /v1.
// Every route requires a valid access token; the read-only list and
// statistics endpoints additionally go through the Redis response cache
// and the mutating routes through the per-user rate limiter.
func RegisterParticipant(e *echo.Echo, p *handler.ParticipantHandler, jwtSecret string, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	cached := middleware.NewRedisCache(cacheCfg, rdb)
	g.GET("/activities", p.ListActivities, cached)
	g.GET("/statistics", p.Statistics, cached)

	g.POST("/register", p.Register)
	g.POST("/activities/:id/reserve", p.Reserve)
	g.GET("/my-reservation", p.MyReservation)
}

// RegisterAdmin registers the allow-list gated administrative routes under
// /v1/admin. The gate runs after JWT authentication and denies anyone not
// in the injected allow-list.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, admins map[uint64]bool) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireAdmin(admins))

	g.POST("/catalog/sync", a.SyncCatalog)
	g.GET("/reservations", a.AllReservations)
	g.GET("/reservations/export", a.ExportReservations)
	g.GET("/activities/:id/participants", a.Participants)
	g.GET("/users", a.ListUsers)
}
