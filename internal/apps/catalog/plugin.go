package catalog

import (
	"github.com/dilshodm/hamxona-backend/internal/cache"
	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CatalogPlugin struct {
	cache *cache.Cache
}

func New(c *cache.Cache) *CatalogPlugin {
	return &CatalogPlugin{cache: c}
}

func (p *CatalogPlugin) ID() string {
	return "category"
}

func (p *CatalogPlugin) Models() []interface{} {
	return []interface{}{&Category{}, &Product{}}
}

func (p *CatalogPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewCatalogService(db, p.cache)
	handler := NewCatalogHandler(service, cfg.UploadDir)

	router.Get("/categories/", handler.ListCategories)
	router.Get("/products/", handler.ListProducts)
	router.Get("/products/:id/", handler.GetProduct)
}

func (p *CatalogPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewCatalogService(db, p.cache)
	handler := NewCatalogHandler(service, cfg.UploadDir)

	router.Post("/categories/", handler.CreateCategory)
	router.Put("/categories/:id/", handler.UpdateCategory)
	router.Delete("/categories/:id/", handler.DeleteCategory)
	router.Post("/products/", handler.CreateProduct)
	router.Put("/products/:id/", handler.UpdateProduct)
	router.Delete("/products/:id/", handler.DeleteProduct)
}
