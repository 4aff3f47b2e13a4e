// Package validation holds the explicit field validators used by the
// registration and login endpoints. Each validator returns nil on success
// or a single dto.FieldError; callers compose them into a list.
package validation

import (
	"regexp"

	"github.com/dilshodm/hamxona-backend/internal/dto"
)

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`\d`)
)

func Email(value string) *dto.FieldError {
	if value == "" {
		return &dto.FieldError{Field: "email", Message: "This field is required."}
	}
	if !emailRe.MatchString(value) {
		return &dto.FieldError{Field: "email", Message: "Enter a valid email address."}
	}
	return nil
}

// StrongPassword requires at least 8 characters with at least one letter
// and one digit. The upper bound is bcrypt's 72-byte input limit.
func StrongPassword(value string) *dto.FieldError {
	if value == "" {
		return &dto.FieldError{Field: "password", Message: "This field is required."}
	}
	if len(value) < 8 {
		return &dto.FieldError{Field: "password", Message: "Password must be at least 8 characters long."}
	}
	if len(value) > 72 {
		return &dto.FieldError{Field: "password", Message: "Password must be at most 72 characters long."}
	}
	if !letterRe.MatchString(value) || !digitRe.MatchString(value) {
		return &dto.FieldError{Field: "password", Message: "Password must contain at least one letter and one number."}
	}
	return nil
}

// Registration validates the create-account form fields.
func Registration(email, password string) []dto.FieldError {
	var errs []dto.FieldError
	if fe := Email(email); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := StrongPassword(password); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// Login validates presence of login credentials.
func Login(email, password string) []dto.FieldError {
	var errs []dto.FieldError
	if fe := Email(email); fe != nil {
		errs = append(errs, *fe)
	}
	if password == "" {
		errs = append(errs, dto.FieldError{Field: "password", Message: "This field is required."})
	}
	return errs
}
