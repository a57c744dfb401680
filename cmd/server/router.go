package main

import (
	"context"

	"tasknest/cmd/server/handlers"
	authHandlers "tasknest/cmd/server/handlers/auth"
	taskHandlers "tasknest/cmd/server/handlers/tasks"
	"tasknest/cmd/server/middlewares"
	"tasknest/internal/clients/mongo"
	"tasknest/internal/config"
	"tasknest/internal/logger"
	authServices "tasknest/internal/services/auth"
	taskServices "tasknest/internal/services/tasks"

	"tasknest/cmd/server/handlers/httperr"

	_ "tasknest/docs" // swagger registration

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	v := validator.New()

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the user-facing group to avoid logging
	app.Get("/healthz", handlers.Healthz)

	app.Get("/docs/*", swagger.HandlerDefault)

	var user fiber.Router
	if cfg.RequestLoggingEnabled {
		user = app.Group("/user", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		user = app.Group("/user")
	}

	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create users repository", "error", err)
		panic(err)
	}

	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	user.Post("/register", authH.Register)
	user.Post("/login", authH.Login)

	principal := middlewares.Principal(cfg, usersRepo)

	taskSvc := taskServices.NewService(usersRepo, logger.L())
	taskH := taskHandlers.NewHandlers(taskSvc, v)

	user.Get("/tasks", principal, taskH.List)
	user.Post("/add-task", principal, taskH.Add)
	user.Put("/update-task/:taskId", principal, taskH.Update)
	user.Delete("/delete-task/:taskId", principal, taskH.Delete)

	// Session restore endpoint for clients holding a stored token
	user.Get("/me", principal, handlers.Me)

	return app
}
