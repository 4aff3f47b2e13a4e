package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/dilshodm/hamxona-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGate(t *testing.T) (*fiber.App, *token.Manager, *gorm.DB, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@b.com",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, db.Create(user).Error)

	tokens := token.NewManager(&config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 2 * time.Hour,
	})

	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens, db), func(c *fiber.Ctx) error {
		current := CurrentUser(c)
		return c.JSON(fiber.Map{"email": current.Email})
	})

	return app, tokens, db, user
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	app, _, _, _ := setupGate(t)

	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	app, tokens, _, user := setupGate(t)

	access, _, err := tokens.IssuePair(user)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Token abc"},
		{"three parts", "Bearer abc def"},
		{"scheme only", "Bearer"},
		{"valid token wrong scheme", "Basic " + access},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app, _, _, _ := setupGate(t)

	resp := doRequest(t, app, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	app, _, _, user := setupGate(t)

	expired := token.NewManager(&config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  -time.Minute,
		JWTRefreshExpiry: -time.Minute,
	})
	access, _, err := expired.IssuePair(user)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ResolvesIdentity(t *testing.T) {
	app, tokens, _, user := setupGate(t)

	access, _, err := tokens.IssuePair(user)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Scheme matching is case-insensitive.
	resp = doRequest(t, app, "bearer "+access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuth_DeletedSubject(t *testing.T) {
	app, tokens, db, user := setupGate(t)

	access, _, err := tokens.IssuePair(user)
	require.NoError(t, err)

	// A valid token whose subject no longer resolves must be rejected.
	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	resp := doRequest(t, app, "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
