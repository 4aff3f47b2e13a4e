package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword returns a bcrypt digest of plaintext. A value that already
// carries the bcrypt prefix is returned untouched, so a user record can be
// saved repeatedly without double-hashing its credential.
func hashPassword(plaintext string) (string, error) {
	if looksHashed(plaintext) {
		return plaintext, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func looksHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}
