package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dilshodm/hamxona-backend/internal/config"
	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/dilshodm/hamxona-backend/internal/middleware"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/dilshodm/hamxona-backend/internal/services"
	"github.com/dilshodm/hamxona-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService, cfg: cfg}
}

// RequestOTP handles POST /authentication/request-otp/.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.RequestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if fe := validation.Email(req.Email); fe != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Errors: []dto.FieldError{*fe},
		})
	}

	if err := h.otpService.RequestOTP(req.Email); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "User with this email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send OTP",
		})
	}

	return c.JSON(dto.OTPResponse{Message: "OTP sent successfully", Email: req.Email})
}

// VerifyEmail handles POST /authentication/verify-email/.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.otpService.VerifyOTP(req.Email, req.OTPCode); err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email not found",
			})
		case errors.Is(err, services.ErrCodeMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "OTP code is incorrect",
			})
		case errors.Is(err, services.ErrCodeExpired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "OTP code has expired",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to verify OTP",
		})
	}

	return c.JSON(dto.OTPResponse{Message: "Verified successfully", Email: req.Email})
}

// CreateAccount handles POST /authentication/create-account/ as
// multipart/form-data with an optional profile image.
func (h *AuthHandler) CreateAccount(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if errs := validation.Registration(email, password); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Errors: errs,
		})
	}

	var profileImage *string
	if file, err := c.FormFile("profile_image"); err == nil {
		if file.Size > 10*1024*1024 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile image must be less than 10MB",
			})
		}
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
		if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, "users", filename)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save profile image",
			})
		}
		url := "/uploads/users/" + filename
		profileImage = &url
	}

	user, err := h.authService.Register(
		c.FormValue("first_name"),
		c.FormValue("last_name"),
		email,
		password,
		profileImage,
	)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
				Error: true,
				Errors: []dto.FieldError{
					{Field: "email", Message: "This field must be unique."},
				},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateAccountResponse{
		Message: "User created successfully",
		User:    h.userResponse(user),
	})
}

// Login handles POST /authentication/auth/login/.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Errors: errs,
		})
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Incorrect password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to log in",
		})
	}

	return c.JSON(resp)
}

// GetProfile handles GET /authentication/api/get-profile/ behind the gate.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(h.userResponse(user))
}

func (h *AuthHandler) userResponse(user *models.User) dto.UserResponse {
	image := user.ProfileImage
	if image != nil && h.cfg.BaseURL != "" {
		absolute := h.cfg.BaseURL + *image
		image = &absolute
	}
	return dto.UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		ProfileImage: image,
		DateJoined:   user.CreatedAt,
	}
}
