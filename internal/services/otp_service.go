package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/mailer"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken        = errors.New("user with this email already exists")
	ErrChallengeNotFound = errors.New("email not found")
	ErrCodeMismatch      = errors.New("otp code is incorrect")
	ErrCodeExpired       = errors.New("otp code has expired")
)

const otpDigits = 6

// OTPService issues and verifies the email-verification challenges that
// gate account creation. One challenge exists per email at a time;
// re-requesting a code overwrites the previous challenge.
type OTPService struct {
	db     *gorm.DB
	mail   mailer.Mailer
	expiry time.Duration
}

func NewOTPService(db *gorm.DB, mail mailer.Mailer, cfg *config.Config) *OTPService {
	return &OTPService{db: db, mail: mail, expiry: cfg.OTPExpiry}
}

// RequestOTP generates a fresh 6-digit code for the email and dispatches it.
// Fails with ErrEmailTaken when an account already owns the address; a mail
// delivery failure is a hard failure and leaves no challenge behind.
func (s *OTPService) RequestOTP(email string) error {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	if err := s.mail.Send(email, "Verification Code", "Your verification code is: "+code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	var challenge models.OTP
	err = s.db.Where("email = ?", email).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		challenge = models.OTP{
			ID:    uuid.New(),
			Email: email,
			Code:  code,
		}
		return s.db.Create(&challenge).Error
	} else if err != nil {
		return fmt.Errorf("failed to look up challenge: %w", err)
	}

	challenge.Code = code
	challenge.IsVerified = false
	challenge.CreatedAt = time.Now()
	return s.db.Save(&challenge).Error
}

// VerifyOTP matches the submitted code against the stored challenge and
// marks it verified. Expired codes are rejected; the challenge row itself
// is kept until the daily cleanup removes it.
func (s *OTPService) VerifyOTP(email, code string) error {
	var challenge models.OTP
	if err := s.db.Where("email = ?", email).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return fmt.Errorf("failed to look up challenge: %w", err)
	}

	if challenge.Code != code {
		return ErrCodeMismatch
	}
	if challenge.IsExpired(s.expiry) {
		return ErrCodeExpired
	}

	challenge.IsVerified = true
	return s.db.Save(&challenge).Error
}

// generateCode draws a uniform 6-digit decimal code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// StartOTPCleanup runs a daily goroutine that deletes unverified
// challenges older than a day. Verified rows are kept so a finished
// registration cannot be replayed into a fresh challenge silently.
func StartOTPCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-24 * time.Hour)
				result := db.Where("created_at < ? AND is_verified = ?", cutoff, false).Delete(&models.OTP{})
				if result.Error != nil {
					slog.Error("otp cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("otp cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
