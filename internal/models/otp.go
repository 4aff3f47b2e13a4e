package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP is a pending email-verification challenge. At most one row exists
// per email; re-requesting a code overwrites the previous challenge.
type OTP struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Code       string    `gorm:"column:otp_code;size:6;not null" json:"-"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsExpired reports whether the challenge is older than ttl.
func (o *OTP) IsExpired(ttl time.Duration) bool {
	return time.Now().After(o.CreatedAt.Add(ttl))
}
