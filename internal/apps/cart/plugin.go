package cart

import (
	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartPlugin struct{}

func New() *CartPlugin {
	return &CartPlugin{}
}

func (p *CartPlugin) ID() string {
	return "cart"
}

func (p *CartPlugin) Models() []interface{} {
	return []interface{}{&CartItem{}, &SavedCard{}}
}

func (p *CartPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCartHandler(NewCartService(db))

	router.Get("/getCart/", handler.GetCart)
	router.Post("/addProduct/", handler.AddProduct)
	router.Delete("/deleteProduct/:product_id/", handler.RemoveProduct)
	router.Post("/orderCart/", handler.OrderCart)
	router.Get("/cards/", handler.ListCards)
	router.Post("/cards/", handler.AddCard)
}
