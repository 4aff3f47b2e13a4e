package routes

import (
	"time"

	"github.com/dilshodm/hamxona-backend/internal/apps"
	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/handlers"
	"github.com/dilshodm/hamxona-backend/internal/middleware"
	"github.com/dilshodm/hamxona-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	tokens *token.Manager,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)
	app.Static("/uploads", cfg.UploadDir)

	gate := middleware.RequireAuth(tokens, db)

	// Authentication: public, with a stricter limit of 10 req/min per IP
	auth := app.Group("/authentication")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/request-otp/", authHandler.RequestOTP)
	auth.Post("/verify-email/", authHandler.VerifyEmail)
	auth.Post("/create-account/", authHandler.CreateAccount)
	auth.Post("/auth/login/", authHandler.Login)
	auth.Get("/api/get-profile/", gate, authHandler.GetProfile)

	// Admin panel: jwtware-verified token + admin check
	admin := app.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))

	// Storefront apps, each mounted under its own segment behind the gate
	for _, p := range plugins {
		group := app.Group("/"+p.ID(), gate)
		p.RegisterRoutes(group, db, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}
