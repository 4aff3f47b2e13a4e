package services

import (
	"strings"
	"testing"

	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)

	user, err := svc.Register("Dilshod", "Muxtorov", "a@b.com", "Passw0rd", nil)
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", user.Email)
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "password must be stored hashed")
	assert.NotEqual(t, "Passw0rd", user.Password)
	assert.True(t, checkPassword("Passw0rd", user.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Register("", "", "a@b.com", "Passw0rd", nil)
	require.NoError(t, err)

	_, err = svc.Register("", "", "a@b.com", "Passw0rd", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestHashPassword_DoubleHashGuard(t *testing.T) {
	t.Parallel()

	first, err := hashPassword("Passw0rd")
	require.NoError(t, err)

	// Re-hashing an already-hashed value must be a no-op.
	second, err := hashPassword(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, checkPassword("Passw0rd", second))
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)

	_, err := svc.Register("", "", "a@b.com", "Passw0rd", nil)
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@b.com", "Passw0rd")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("a@b.com", "WrongPass1")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("success returns token pair", func(t *testing.T) {
		resp, err := svc.Login("a@b.com", "Passw0rd")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	})
}

func TestFindByID(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(db)

	user, err := svc.Register("", "", "a@b.com", "Passw0rd", nil)
	require.NoError(t, err)

	found, err := svc.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)
	_, err = svc.FindByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
