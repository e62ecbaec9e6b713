package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"awguestbook/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if translateUnique(err) == domain.ErrConflict {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, reset_token, reset_expires, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, reset_token, reset_expires, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $2, reset_expires = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, userID, token, expires)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, reset_token, reset_expires, created_at, updated_at
		FROM users
		WHERE reset_token = $1 AND reset_expires > NOW()
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, token))
}

func (r *userRepository) UpdatePasswordAndClearReset(ctx context.Context, userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var resetToken sql.NullString
	var resetExpires sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &resetToken, &resetExpires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.ResetExpires = &resetExpires.Time
	}
	return u, nil
}
