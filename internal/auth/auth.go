// Package auth gates content-management commands behind a password.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is used when no password hash is configured.
const DefaultPassword = "921256"

// ErrDenied is returned for a wrong or missing password.
var ErrDenied = errors.New("admin password rejected")

// Gate checks admin passwords against a bcrypt hash.
type Gate struct {
	hash []byte
}

// NewGate builds a gate from a bcrypt hash. An empty hash falls back to
// DefaultPassword.
func NewGate(hash string) (*Gate, error) {
	if hash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash default password: %w", err)
		}
		return &Gate{hash: h}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &Gate{hash: []byte(hash)}, nil
}

// Check returns nil when password matches.
func (g *Gate) Check(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password required", ErrDenied)
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrDenied
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for admin.password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
