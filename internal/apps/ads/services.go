package ads

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAdNotFound = errors.New("advertisement not found")

type AdService struct {
	db *gorm.DB
}

func NewAdService(db *gorm.DB) *AdService {
	return &AdService{db: db}
}

// List returns all banners, newest first.
func (s *AdService) List() ([]Advertisement, error) {
	var banners []Advertisement
	if err := s.db.Order("created_at DESC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	return banners, nil
}

func (s *AdService) Create(title, description, imageURL string) (*Advertisement, error) {
	banner := Advertisement{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.db.Create(&banner).Error; err != nil {
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}
	return &banner, nil
}

func (s *AdService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&Advertisement{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete advertisement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdNotFound
	}
	return nil
}
