package http

import (
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farm-advisor/internal/services/advisor"
	"farm-advisor/internal/services/auth"
	"farm-advisor/pkg/observe"
)

type routes struct {
	advisor *advisor.Service
	auth    *auth.Service
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	advisorService *advisor.Service,
	authService *auth.Service,
	l *observe.Logger,
) {
	r := &routes{
		advisor: advisorService,
		auth:    authService,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		// Read the generated swagger.json file
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	api := app.Group("/api/v1")

	api.Post("/auth/register", r.handleRegister)
	api.Post("/auth/login", r.handleLogin)
	api.Post("/auth/logout", r.requireAuth, r.handleLogout)

	api.Get("/advisory", r.requireAuth, r.handleAdvisory)
	api.Get("/activity", r.requireAuth, r.requireAdmin, r.handleActivity)
}
