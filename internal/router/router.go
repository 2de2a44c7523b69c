package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/direct-chat/internal/config"
	"github.com/iliyamo/direct-chat/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/direct-chat/internal/middleware" // import middleware for the auth gate, rate limiting and caching
	"github.com/iliyamo/direct-chat/internal/repository"
)

// Register wires every route of the service onto the provided Echo
// instance. Signup/login/logout live under /auth without the gate (no
// session exists yet); everything else runs through middleware.Protect
// so handlers always receive a loaded authenticated identity.
//
// The Redis-backed rate limiter covers the credential endpoints to slow
// brute-force attempts, and the sidebar listing gets a short per-user
// response cache. Both degrade to no-ops when Redis is unavailable.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, m *handler.MessageHandler, users *repository.UserRepo, rdb *redis.Client) {
	// Liveness probe, unauthenticated.
	e.GET("/healthz", handler.Health)

	gate := middleware.Protect(cfg.JWTSecret, users)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Session-less auth operations.
	ag := e.Group("/auth")
	ag.POST("/signup", a.Signup, limiter)
	ag.POST("/login", a.Login, limiter)
	ag.POST("/logout", a.Logout)

	// Protected auth operations: profile update and session check.
	ag.PUT("/update-profile", a.UpdateProfile, gate)
	ag.GET("/check", a.Check, gate)

	// Messaging, all behind the gate.
	mg := e.Group("/messages", gate)
	mg.GET("/users", m.Sidebar, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	mg.GET("/:id", m.History)
	mg.POST("/send/:id", m.Send)
}
