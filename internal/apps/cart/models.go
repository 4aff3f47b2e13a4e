package cart

import (
	"time"

	"github.com/dilshodm/hamxona-backend/internal/apps/catalog"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/google/uuid"
)

const (
	StatusActive = "Active"
	StatusSold   = "Sold"
)

type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	User      models.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Product   catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Status    string          `gorm:"size:15;not null;default:'Active'" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// TotalPrice is derived, never stored.
func (i *CartItem) TotalPrice() float64 {
	return i.Product.Price * float64(i.Quantity)
}

type SavedCard struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"-"`
	User       models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CardName   string      `gorm:"size:100;not null" json:"card_name"`
	CardNumber string      `gorm:"size:19;not null" json:"card_number"`
	ExpiryDate string      `gorm:"size:5;not null" json:"expiry_date"`
	CVV        string      `gorm:"size:3;not null" json:"cvv"`
	AddedAt    time.Time   `gorm:"autoCreateTime" json:"added_at"`
}

// --- DTOs ---

type AddProductRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Product    catalog.Product `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice float64         `json:"total_price"`
}

type AddCardRequest struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}
