// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid admin password")

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHash reports whether the configured password is a bcrypt hash
func IsHash(configured string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(configured, p) {
			return true
		}
	}
	return false
}

// CheckPassword compares the submitted password against the configured one.
// A bcrypt hash is verified with bcrypt, anything else must match exactly.
func CheckPassword(configured, input string) bool {
	if IsHash(configured) {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(input)) == 1
}

// ValidatePassword is CheckPassword returning ErrInvalidPassword on mismatch
func ValidatePassword(configured, input string) error {
	if !CheckPassword(configured, input) {
		return ErrInvalidPassword
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for app_config.password
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}
