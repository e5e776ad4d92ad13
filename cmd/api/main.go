package main

import (
	"context"
	"fmt"
	common_api "go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/database"
	"go-dashboard/internal/features/audit"
	"go-dashboard/internal/features/preferences"
	"go-dashboard/internal/features/system"
	"go-dashboard/internal/features/widgetdata"
	"go-dashboard/internal/logger"
	"go-dashboard/internal/middleware"
	"go-dashboard/pkg/utils"
	"log"

	_ "go-dashboard/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           Dashboard Builder API
// @version         1.0
// @description     Widget dashboard preferences and data API using Fiber, Uber Fx, and MongoDB.

// @contact.name    API Support

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			preferences.NewPreferencesRepository,
			audit.NewAuditRepository,

			// Initialize Service
			audit.NewAuditService,
			preferences.NewPreferencesService,
			widgetdata.NewWidgetDataService,

			// Initialize Controller
			preferences.NewPreferencesController,
			widgetdata.NewWidgetDataController,
			audit.NewAuditController,

			// Background jobs
			audit.NewRetentionJob,

			// Initialize API Routes
			AsRoute(preferences.NewPreferencesApi),
			AsRoute(widgetdata.NewWidgetDataApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, job *audit.RetentionJob) {
				lc.Append(fx.Hook{
					OnStart: job.Start,
					OnStop:  job.Stop,
				})
			},
		),
	)

	app.Run()
}
