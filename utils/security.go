package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt. The salt is
// generated per call and embedded in the hash.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &PasswordHasher{cost: cost}, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether password matches hashed. A malformed hash never
// matches.
func (h *PasswordHasher) Verify(password, hashed string) bool {
	return CheckPasswordHash(password, hashed)
}

// CheckPasswordHash reports whether password matches hash. bcrypt ignores
// input past MaxPasswordBytes, so longer passwords never match; the
// comparison still runs to keep timing uniform.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil && len(password) <= MaxPasswordBytes
}
