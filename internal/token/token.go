// Package token mints and validates the signed bearer tokens presented by
// the storefront client. Tokens are stateless: there is no server-side
// revocation, a token stays valid until its signature fails or it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrMalformed        = errors.New("token is malformed")
	ErrInvalidOrExpired = errors.New("token signature is invalid or token has expired")
)

type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
}

// Manager issues HS256-signed access/refresh token pairs and verifies
// inbound token strings.
type Manager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:        []byte(cfg.JWTSecret),
		accessExpiry:  cfg.JWTAccessExpiry,
		refreshExpiry: cfg.JWTRefreshExpiry,
	}
}

// IssuePair mints an access and a refresh token for the user. Both carry
// the user id as the subject claim; only the lifetimes and token_type differ.
func (m *Manager) IssuePair(user *models.User) (access string, refresh string, err error) {
	access, err = m.sign(user, TypeAccess, m.accessExpiry)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.sign(user, TypeRefresh, m.refreshExpiry)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *Manager) sign(user *models.User, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:     user.Email,
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature and expiry of a token string and returns the
// subject claim (user id). It does not resolve the user; that is the
// caller's job.
func (m *Manager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidOrExpired, err)
	}
	if !tok.Valid {
		return uuid.Nil, ErrInvalidOrExpired
	}

	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject claim", ErrInvalidOrExpired)
	}
	return sub, nil
}
