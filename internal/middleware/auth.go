package middleware

import (
	"strings"

	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/dilshodm/hamxona-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// RequireAuth is the bearer-token gate applied to every storefront
// endpoint. It extracts the token from the Authorization header, verifies
// signature and expiry, resolves the subject claim against the users table
// and stores the resolved user in the request locals. Each request is
// checked independently; nothing is retained between calls.
func RequireAuth(tokens *token.Manager, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Authorization header is required")
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return unauthorized(c, "Authorization header must contain two space-delimited values")
		}

		sub, err := tokens.Verify(parts[1])
		if err != nil {
			return unauthorized(c, "Token invalid: "+err.Error())
		}

		var user models.User
		if err := db.First(&user, "id = ?", sub).Error; err != nil {
			return unauthorized(c, "User not found")
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the identity resolved by RequireAuth, or nil when the
// route was not behind the gate.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(currentUserKey).(*models.User); ok {
		return user
	}
	return nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
