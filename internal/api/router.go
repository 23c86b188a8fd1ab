package api

import (
	"os"
	"path/filepath"
	"time"

	"quantumfinance/docs"
	"quantumfinance/internal/api/handlers"
	"quantumfinance/pkg/auth"
	"quantumfinance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// RouterConfig carries the handlers and auth settings for SetupRouter.
type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	DashboardHandler *handlers.DashboardHandler
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	// StaticDir overrides the web/static lookup. Empty means search.
	StaticDir string
}

func SetupRouter(cfg RouterConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
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

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger spec
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	webStaticPath := cfg.StaticDir
	if webStaticPath == "" {
		webStaticPath = findWebStaticPath(appLogger)
	}
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, dashboard page will not be served")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		indexPath := filepath.Join(webStaticPath, "index.html")
		if webStaticPath == "" || !fileExists(indexPath) {
			return c.Status(fiber.StatusNotFound).SendString("Dashboard not found. Please ensure web/static/index.html exists.")
		}
		return c.SendFile(indexPath)
	})

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.AuthHandler.Login)
	authGroup.Post("/refresh", cfg.AuthHandler.RefreshToken)

	// group middleware covers the whole prefix, so the guard is attached
	// per protected group rather than on /api/v1
	var guard []fiber.Handler
	if cfg.AuthEnabled {
		guard = append(guard, middleware.AuthMiddleware(cfg.JWTManager, appLogger))
	} else {
		appLogger.Warn("Authentication is disabled, dashboard API is open")
	}

	dash := cfg.DashboardHandler

	users := api.Group("/users", guard...)
	users.Get("", dash.ListUsers)
	users.Get("/:id/profile", dash.Profile)
	users.Get("/:id/recommendations", dash.Recommendations)
	users.Get("/:id/chart", dash.Chart)
	users.Get("/:id/advice", dash.Advice)
	users.Get("/:id/interactions", dash.Interactions)

	products := api.Group("/products", guard...)
	products.Get("", dash.Products)

	dataset := api.Group("/dataset", guard...)
	dataset.Get("", dash.Status)
	dataset.Post("/reload", dash.Reload)

	return app
}

// findWebStaticPath looks for web/static relative to the working directory.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried path", zap.String("path", path))
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
