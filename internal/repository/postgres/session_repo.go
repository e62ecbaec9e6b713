package postgres

import (
	"context"
	"database/sql"
	"errors"

	"awguestbook/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, s.Token, s.UserID, s.ExpiresAt, s.CreatedAt)
	return err
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
