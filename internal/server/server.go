package server

import (
	"errors"
	"log"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Services bundles the business services behind the HTTP API.
type Services struct {
	Auth       *services.AuthService
	Categories *services.CategoryService
	Products   *services.ProductService
	Tokens     *services.TokenService
}

// NewServices wires the services on top of a GORM store.
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	store := repositories.NewGORMStore(db)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	return &Services{
		Auth:       services.NewAuthService(store, tokens),
		Categories: services.NewCategoryService(store),
		Products:   services.NewProductService(store),
		Tokens:     tokens,
	}
}

// New builds the Fiber application with all middleware and routes.
func New(cfg *config.Config, db *gorm.DB, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "inventory",
		ErrorHandler: errorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: log.Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), db); err != nil {
			log.Printf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
				"time":     time.Now().UTC().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": "connected",
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(apiV1, limiter.Handler())

	authRequired := middleware.AuthRequired(svc.Tokens)
	handlers.NewCategoryHandler(svc.Categories).RegisterRoutes(apiV1, authRequired)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(apiV1, authRequired)

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
