package ads

import (
	"time"

	"github.com/google/uuid"
)

// Advertisement is a storefront banner.
type Advertisement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageURL    string    `gorm:"size:255" json:"image"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
