package ads

import (
	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdsPlugin struct{}

func New() *AdsPlugin {
	return &AdsPlugin{}
}

func (p *AdsPlugin) ID() string {
	return "ads"
}

func (p *AdsPlugin) Models() []interface{} {
	return []interface{}{&Advertisement{}}
}

func (p *AdsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewAdHandler(NewAdService(db), cfg.UploadDir)
	router.Get("/banners/", handler.List)
}

func (p *AdsPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewAdHandler(NewAdService(db), cfg.UploadDir)
	router.Post("/banners/", handler.Create)
	router.Delete("/banners/:id/", handler.Delete)
}
