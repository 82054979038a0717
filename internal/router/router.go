package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/scolarite/exam-scheduling/internal/config"
	"github.com/scolarite/exam-scheduling/internal/handler"
	"github.com/scolarite/exam-scheduling/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and the portal's status page probe this endpoint.
	e.GET("/healthz", handler.Health)
}

// RegisterAdmin registers the scolarité back-office endpoints under /v1.
// Every route requires a portal-issued JWT with a scheduling role; the
// token bucket throttles per admin. The Redis response cache applies to
// the heavier read endpoints only; entries expire by TTL, so keep it
// short enough that a commit shows up on the next page load.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.AdminAuth(jwtSecret),
		middleware.RequireRole("SCOLARITE", "ADMIN"),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// ---- Locations ----
	g.POST("/locations", h.CreateLocation)
	g.GET("/locations", h.ListLocations, cached)
	g.DELETE("/locations/:id", h.DeleteLocation)

	// ---- Roster & planning ----
	g.POST("/roster", h.PreviewRoster)
	g.POST("/plans/auto", h.AutoPlan)
	g.POST("/plans/commit", h.CommitPlan)

	// ---- Sessions ----
	g.GET("/sessions", h.ListSessions, cached)
	// export before :id so Echo does not match "export" as a session id
	g.GET("/sessions/export", h.ExportSessions)
	g.GET("/sessions/:id", h.GetSession)
	g.DELETE("/sessions/:id", h.DeleteSession)

	// ---- Conflicts ----
	g.GET("/conflicts", h.ListConflicts, cached)
	g.GET("/conflicts/count", h.CountConflicts, cached)

	// ---- Participant refresh ----
	g.POST("/refresh", h.RefreshParticipants)
}
