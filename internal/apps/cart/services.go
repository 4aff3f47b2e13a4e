package cart

import (
	"errors"
	"fmt"

	"github.com/dilshodm/hamxona-backend/internal/apps/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrEmptyCart        = errors.New("no active items to order")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's active cart items with their products loaded.
func (s *CartService) GetCart(userID uuid.UUID) ([]CartItem, error) {
	var items []CartItem
	err := s.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return items, nil
}

func (s *CartService) AddProduct(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product catalog.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	item := CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    StatusActive,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	item.Product = product
	return &item, nil
}

// RemoveProduct deletes the user's active cart item holding the product.
func (s *CartService) RemoveProduct(userID, productID uuid.UUID) error {
	var item CartItem
	err := s.db.Where("user_id = ? AND product_id = ? AND status = ?", userID, productID, StatusActive).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("failed to load cart item: %w", err)
	}
	return s.db.Delete(&item).Error
}

// OrderCart marks every active item Sold and reports how many were updated.
func (s *CartService) OrderCart(userID uuid.UUID) (int64, error) {
	result := s.db.Model(&CartItem{}).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Update("status", StatusSold)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to order cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrEmptyCart
	}
	return result.RowsAffected, nil
}

func (s *CartService) ListCards(userID uuid.UUID) ([]SavedCard, error) {
	var cards []SavedCard
	err := s.db.Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	return cards, nil
}

func (s *CartService) AddCard(userID uuid.UUID, req *AddCardRequest) (*SavedCard, error) {
	card := SavedCard{
		ID:         uuid.New(),
		UserID:     userID,
		CardName:   req.CardName,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return &card, nil
}
