package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User represents a registered account. A user owns zero or more events.
// swagger:model User
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	ResetToken   *string    `json:"-"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email, passwordHash, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues API tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies an API token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string) (*User, error)
	UpdatePasswordAndClearReset(ctx context.Context, userID int64, passwordHash string) error
}
