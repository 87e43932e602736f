package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Maintenances   *handlers.MaintenancesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Post("/password", cfg.Users.ChangePassword)

	maintenances := app.Group("/maintenances", cfg.AuthMiddleware.Handle, auth.RequireRole())
	supervisors := auth.RequireRole(domain.RoleSupervisor)

	// Static scheduled routes go before the :id routes.
	maintenances.Post("/scheduled", cfg.Maintenances.CreateScheduled)
	maintenances.Get("/scheduled", cfg.Maintenances.ListScheduled)
	maintenances.Get("/scheduled/:id", cfg.Maintenances.GetScheduled)
	maintenances.Put("/scheduled/:id", cfg.Maintenances.UpdateScheduled)

	maintenances.Post("/", cfg.Maintenances.Create)
	maintenances.Get("/", cfg.Maintenances.List)
	maintenances.Get("/:id", cfg.Maintenances.Get)
	maintenances.Put("/:id", cfg.Maintenances.Update)
	maintenances.Get("/:id/audit", cfg.Maintenances.Audit)

	maintenances.Patch("/:id/status", supervisors, cfg.Maintenances.ToggleStatus)
	maintenances.Delete("/:id", supervisors, cfg.Maintenances.Delete)
	maintenances.Post("/:id/review", supervisors, cfg.Maintenances.Review)
}
