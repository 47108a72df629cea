// Package router wires HTTP routes to handlers and applies middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/primavista/lounge-backend/internal/config"
	"github.com/primavista/lounge-backend/internal/handler"
	"github.com/primavista/lounge-backend/internal/middleware"
	"github.com/primavista/lounge-backend/internal/model"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth         *handler.AuthHandler
	Checkin      *handler.CheckinHandler
	Passengers   *handler.PassengerHandler
	Dashboard    *handler.DashboardHandler
	Reports      *handler.ReportHandler
	Reservations *handler.ReservationHandler
	Settings     *handler.SettingsHandler
}

// Register attaches all application routes to the Echo instance.
//
// Route protection levels:
//   - open: health check, register, login, refresh
//   - authenticated (any role): everything operational
//   - admin only: lounge settings writes and user management
//
// rdb may be nil; the cache and rate-limit middlewares then pass through.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	loginLimit := middleware.NewLoginRateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	// Unauthenticated auth operations.
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login, loginLimit)
	e.POST("/auth/refresh", h.Auth.Refresh)

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)

	// Session-bound auth operations: logout and status both answer 401
	// without a valid token.
	e.POST("/auth/logout", h.Auth.Logout, jwtAuth)
	e.GET("/auth/status", h.Auth.Status, jwtAuth)

	// Operational surface, any authenticated user.
	auth := e.Group("", jwtAuth)
	auth.POST("/checkin", h.Checkin.CheckIn)
	auth.GET("/passengers", h.Passengers.List)
	auth.POST("/passengers/:entry_id/exit", h.Passengers.Exit)
	auth.GET("/dashboard/stats", h.Dashboard.Stats, cache)
	auth.GET("/dashboard/recent-entries", h.Dashboard.RecentEntries, cache)
	auth.GET("/reports/lounge-usage", h.Reports.LoungeUsage, cache)
	auth.POST("/reservations", h.Reservations.Create)
	auth.GET("/reservations", h.Reservations.List)
	auth.PUT("/reservations/:id/status", h.Reservations.UpdateStatus)
	auth.GET("/settings/lounge", h.Settings.GetLounge)

	// Admin-gated settings and user management.
	admin := e.Group("/settings", jwtAuth, middleware.RequireRole(model.RoleAdmin))
	admin.POST("/lounge", h.Settings.UpdateLounge)
	admin.GET("/users", h.Settings.ListUsers)
	admin.POST("/users", h.Settings.CreateUser)
	admin.PUT("/users/:id", h.Settings.UpdateUser)
}
