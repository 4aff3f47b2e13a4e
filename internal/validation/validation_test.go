package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "a@b.com", false},
		{"subdomain", "user@mail.example.org", false},
		{"empty", "", true},
		{"no at", "ab.com", true},
		{"no domain dot", "a@bcom", true},
		{"spaces", "a b@c.com", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fe := Email(tt.value)
			if tt.wantErr {
				assert.NotNil(t, fe)
				assert.Equal(t, "email", fe.Field)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "Passw0rd", false},
		{"long mixed", "abcdefg1", false},
		{"too short", "Pass1", true},
		{"seven chars", "abcdef1", true},
		{"digits only", "12345678", true},
		{"letters only", "abcdefgh", true},
		{"empty", "", true},
		{"72 bytes", strings.Repeat("a1", 36), false},
		{"over bcrypt limit", strings.Repeat("a1", 37), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fe := StrongPassword(tt.value)
			if tt.wantErr {
				assert.NotNil(t, fe)
				assert.Equal(t, "password", fe.Field)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	errs := Registration("", "short")
	assert.Len(t, errs, 2)

	errs = Registration("a@b.com", "Passw0rd")
	assert.Empty(t, errs)
}
