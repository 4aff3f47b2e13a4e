package dto

import (
	"time"

	"github.com/google/uuid"
)

type RequestOTPRequest struct {
	Email string `json:"email"`
}

type VerifyEmailRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type OTPResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profile_image"`
	DateJoined   time.Time `json:"date_joined"`
}

type CreateAccountResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error  bool         `json:"error"`
	Errors []FieldError `json:"errors"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
