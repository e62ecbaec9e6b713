package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services. Controllers map these onto the
// JSON envelope; cross-tenant access is reported as ErrNotFound so the API
// never reveals whether a resource exists for another user.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrNoEventSelected    = errors.New("no event selected")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// ValidationError reports every violated field at once, keyed by the
// request field name (nama, email, telepon, pesan, ...).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError returns the *ValidationError inside err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
