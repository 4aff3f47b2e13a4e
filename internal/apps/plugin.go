package apps

import (
	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every storefront app (catalog, cart, ads)
// must implement.
type Plugin interface {
	// ID returns the unique app identifier, which is also the URL segment
	// the app's routes are mounted under.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group already has the bearer-token gate applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-only route registration. The admin
// group has JWT and Admin middleware applied.
type AdminPlugin interface {
	Plugin

	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
