package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the storefront account record. Email is unique, stored as
// submitted; Password always holds a bcrypt digest, never plaintext.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"size:255;default:''" json:"first_name"`
	LastName     string    `gorm:"size:255;default:''" json:"last_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:20;default:'user'" json:"-"`
	ProfileImage *string   `gorm:"size:255" json:"profile_image"`
	CreatedAt    time.Time `json:"date_joined"`
}
