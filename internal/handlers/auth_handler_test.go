package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/dilshodm/hamxona-backend/internal/middleware"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/dilshodm/hamxona-backend/internal/services"
	"github.com/dilshodm/hamxona-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, body)
	return nil
}

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	mail *fakeMailer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.OTP{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  7 * 24 * time.Hour,
		JWTRefreshExpiry: 14 * 24 * time.Hour,
		OTPExpiry:        5 * time.Minute,
		UploadDir:        t.TempDir(),
	}

	tokens := token.NewManager(cfg)
	mail := &fakeMailer{}
	authService := services.NewAuthService(db, cfg, tokens)
	otpService := services.NewOTPService(db, mail, cfg)
	handler := NewAuthHandler(authService, otpService, cfg)

	app := fiber.New()
	auth := app.Group("/authentication")
	auth.Post("/request-otp/", handler.RequestOTP)
	auth.Post("/verify-email/", handler.VerifyEmail)
	auth.Post("/create-account/", handler.CreateAccount)
	auth.Post("/auth/login/", handler.Login)
	auth.Get("/api/get-profile/", middleware.RequireAuth(tokens, db), handler.GetProfile)

	return &testEnv{app: app, db: db, mail: mail}
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}

func TestRequestOTP(t *testing.T) {
	env := setupEnv(t)

	resp := env.postJSON(t, "/authentication/request-otp/", dto.RequestOTPRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.mail.sent, 1)

	var out dto.OTPResponse
	decode(t, resp, &out)
	assert.Equal(t, "a@b.com", out.Email)
}

func TestRequestOTP_InvalidEmail(t *testing.T) {
	env := setupEnv(t)

	resp := env.postJSON(t, "/authentication/request-otp/", dto.RequestOTPRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.mail.sent)
}

func TestRequestOTP_AlreadyRegistered(t *testing.T) {
	env := setupEnv(t)

	resp := env.postForm(t, "/authentication/create-account/", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/request-otp/", dto.RequestOTPRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAccount_WeakPassword(t *testing.T) {
	env := setupEnv(t)

	for _, password := range []string{"short1", "lettersonly", "12345678", strings.Repeat("a1", 37)} {
		resp := env.postForm(t, "/authentication/create-account/", map[string]string{
			"email":    "a@b.com",
			"password": password,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "password %q must be rejected", password)
	}
}

func TestLogin_StatusCodes(t *testing.T) {
	env := setupEnv(t)

	resp := env.postForm(t, "/authentication/create-account/", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/auth/login/", dto.LoginRequest{Email: "nobody@b.com", Password: "Passw0rd"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/auth/login/", dto.LoginRequest{Email: "a@b.com", Password: "WrongPass1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/auth/login/", dto.LoginRequest{Email: "a@b.com", Password: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/auth/login/", dto.LoginRequest{Email: "a@b.com", Password: "Passw0rd"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestFullRegistrationFlow walks the whole journey: request OTP, verify the
// emailed code, create the account, log in and fetch the profile with the
// returned access token.
func TestFullRegistrationFlow(t *testing.T) {
	env := setupEnv(t)

	resp := env.postJSON(t, "/authentication/request-otp/", dto.RequestOTPRequest{Email: "a@b.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var challenge models.OTP
	require.NoError(t, env.db.Where("email = ?", "a@b.com").First(&challenge).Error)
	require.Contains(t, env.mail.sent[0], challenge.Code)

	// Wrong code first, then the emailed one.
	resp = env.postJSON(t, "/authentication/verify-email/", dto.VerifyEmailRequest{Email: "a@b.com", OTPCode: "000000"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/verify-email/", dto.VerifyEmailRequest{Email: "a@b.com", OTPCode: challenge.Code})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.postForm(t, "/authentication/create-account/", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.postJSON(t, "/authentication/auth/login/", dto.LoginRequest{Email: "a@b.com", Password: "Passw0rd"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens dto.LoginResponse
	decode(t, resp, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	req := httptest.NewRequest(http.MethodGet, "/authentication/api/get-profile/", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	profileResp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, profileResp.StatusCode)

	var profile dto.UserResponse
	decode(t, profileResp, &profile)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.Equal(t, "", profile.FirstName)
	assert.Equal(t, "", profile.LastName)
}

func TestGetProfile_BadHeaders(t *testing.T) {
	env := setupEnv(t)

	for _, header := range []string{"", "Token abc def", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/authentication/api/get-profile/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var out dto.ErrorResponse
		decode(t, resp, &out)
		assert.True(t, out.Error)
		assert.True(t, strings.Contains(out.Message, "Authorization header"))
	}
}
