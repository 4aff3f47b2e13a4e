package services

import (
	"errors"
	"fmt"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/dilshodm/hamxona-backend/internal/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidPassword = errors.New("incorrect password")
	ErrUserNotFound    = errors.New("user not found")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *token.Manager
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *token.Manager) *AuthService {
	return &AuthService{db: db, cfg: cfg, tokens: tokens}
}

// Register creates the account after OTP verification has cleared the
// email. The caller validates fields; this only enforces email uniqueness
// and hashes the credential before it is persisted.
func (s *AuthService) Register(firstName, lastName, email, password string, profileImage *string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Password:     hash,
		ProfileImage: profileImage,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Login verifies the credentials and mints a token pair. Unknown email and
// wrong password are distinct failures (404 vs 401 at the boundary).
func (s *AuthService) Login(email, password string) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !checkPassword(password, user.Password) {
		return nil, ErrInvalidPassword
	}

	access, refresh, err := s.tokens.IssuePair(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &dto.LoginResponse{RefreshToken: refresh, AccessToken: access}, nil
}

func (s *AuthService) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
