package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"awguestbook/internal/domain"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt. bcrypt
// embeds its own salt in the hash.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost == 0 {
		cost = 12
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
