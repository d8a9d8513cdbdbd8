package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-service/internal/api/http/handlers"
	"github.com/spec-kit/staff-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	staff := app.Group("/staff")
	staff.Post("/login", cfg.Staff.Login)
	staff.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Staff.Logout)
	staff.Get("/me", cfg.AuthMiddleware.Handle, cfg.Staff.Me)

	staff.Post("/", cfg.Staff.Create)
	staff.Get("/", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Patch("/:id", cfg.Staff.Update)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Delete("/:id", cfg.Staff.Delete)
}
