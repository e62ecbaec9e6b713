package postgres

import (
	"errors"

	"github.com/lib/pq"

	"awguestbook/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// translateUnique maps a unique-constraint violation onto ErrConflict so
// services can distinguish it from generic storage failure. The unique
// indexes on users.email and guests.qr_token are the last line of defense
// against duplicates.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}
