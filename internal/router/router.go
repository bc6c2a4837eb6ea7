// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evenio/ticketing/internal/config"
	"github.com/evenio/ticketing/internal/handler"
	"github.com/evenio/ticketing/internal/middleware"
)

// RegisterRoutes registers all API routes on the provided Echo
// instance. The events listing goes through the Redis response cache
// and the purchase mutation through the token-bucket rate limiter;
// both middlewares degrade to no-ops when rdb is nil.
func RegisterRoutes(e *echo.Echo, events *handler.EventHandler, orders *handler.OrderHandler, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Read side: event snapshots. Cached briefly to absorb listing
	// bursts without hammering the database.
	e.GET("/v1/events", events.ListEvents, cache)
	e.GET("/v1/events/:id", events.GetEvent, cache)
	e.GET("/v1/events/:id/orders", orders.ListEventOrders, cache)

	// Write side: ticket purchase. Never cached; rate limited per
	// client IP and route.
	e.POST("/v1/orders", orders.CreateOrder, limiter)
}
