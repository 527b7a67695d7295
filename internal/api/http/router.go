package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/repair-tracker/internal/api/http/handlers"
	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Requests       *handlers.RequestsHandler
	Dashboard      *handlers.DashboardHandler
	Assets         *handlers.AssetsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	requests := api.Group("/requests")
	requests.Post("/", cfg.Requests.Create)
	requests.Get("/", cfg.Requests.List)
	requests.Get("/assigned", auth.RequireRole(domain.RoleTechnician, domain.RoleAdmin), cfg.Requests.Assigned)
	requests.Get("/history", cfg.Requests.History)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Post("/:id/accept", cfg.Requests.Accept)
	requests.Post("/:id/complete", cfg.Requests.Complete)
	requests.Patch("/:id/priority", auth.RequireRole(domain.RoleAdmin), cfg.Requests.Reprioritize)

	api.Get("/dashboard", cfg.Dashboard.Get)

	assets := api.Group("/assets")
	assets.Get("/", cfg.Assets.List)
	assets.Get("/:id", cfg.Assets.Get)
}
