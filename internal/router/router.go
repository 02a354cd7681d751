package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mentora-go-api/internal/config"
	"github.com/noah-isme/mentora-go-api/internal/handler"
	"github.com/noah-isme/mentora-go-api/internal/middleware"
	"github.com/noah-isme/mentora-go-api/internal/models"
	"github.com/noah-isme/mentora-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	TaskHandler         *handler.TaskHandler
	AssignmentHandler   *handler.AssignmentHandler
	NotificationHandler *handler.NotificationHandler
	UploadHandler       *handler.UploadHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	requireExpert := middleware.RequireRole(models.RoleExpert)
	requireStudent := middleware.RequireRole(models.RoleStudent)

	// Each role-guarded group owns a disjoint path prefix; fiber mounts group
	// middleware by prefix, so overlapping prefixes would leak guards across
	// concerns.
	if deps.TaskHandler != nil {
		tasks := app.Group("/api/v1/tasks", jwtMiddleware, requireExpert,
			middleware.RateLimit("tasks", 30, time.Minute))
		deps.TaskHandler.RegisterTasks(tasks)

		assignments := app.Group("/api/v1/assignments", jwtMiddleware, requireExpert)
		deps.TaskHandler.RegisterGrading(assignments)

		directory := app.Group("/api/v1/directory", jwtMiddleware, requireExpert)
		deps.TaskHandler.RegisterDirectory(directory)
	}

	if deps.AssignmentHandler != nil {
		student := app.Group("/api/v1/student", jwtMiddleware, requireStudent)
		deps.AssignmentHandler.Register(student)
	}

	if deps.NotificationHandler != nil {
		notifications := app.Group("/api/v1/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.UploadHandler != nil {
		uploads := app.Group("/api/v1/uploads", jwtMiddleware, requireExpert)
		deps.UploadHandler.Register(uploads)
	}
}
