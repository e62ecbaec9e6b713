package postgres

import (
	"context"
	"database/sql"
	"errors"

	"awguestbook/internal/domain"
)

const guestColumns = `
	g.id, g.event_id, g.nama, g.email, g.telepon, g.pesan, g.table_number,
	g.qr_token, g.status, g.checked_in_at, g.created_at, g.updated_at
`

// guestReturning mirrors guestColumns without the table alias, for
// RETURNING clauses.
const guestReturning = `
	id, event_id, nama, email, telepon, pesan, table_number,
	qr_token, status, checked_in_at, created_at, updated_at
`

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (event_id, nama, email, telepon, pesan, table_number, qr_token, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		g.EventID, g.Nama, g.Email, g.Telepon, g.Pesan, g.TableNumber,
		g.QRToken, g.Status, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return translateUnique(err)
	}
	g.QRCode = domain.FormatQRCode(g.ID, g.QRToken)
	return nil
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests g WHERE g.id = $1`
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *guestRepository) GetByIDAndToken(ctx context.Context, id int64, token string) (*domain.Guest, error) {
	// The two-part match is one statement so id and token are checked
	// atomically; a tampered pair never resolves to a row.
	query := `SELECT ` + guestColumns + ` FROM guests g WHERE g.id = $1 AND g.qr_token = $2`
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, id, token))
}

func (r *guestRepository) Update(ctx context.Context, g *domain.Guest) error {
	query := `
		UPDATE guests
		SET nama = $2, email = $3, telepon = $4, pesan = $5, table_number = $6, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, g.ID, g.Nama, g.Email, g.Telepon, g.Pesan, g.TableNumber)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *guestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *guestRepository) ListByEvent(ctx context.Context, eventID int64, search string) ([]*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests g WHERE g.event_id = $1`
	args := []any{eventID}
	if search != "" {
		query += ` AND (g.nama ILIKE '%' || $2 || '%' OR g.email ILIKE '%' || $2 || '%' OR g.telepon ILIKE '%' || $2 || '%')`
		args = append(args, search)
	}
	query += ` ORDER BY g.created_at DESC`
	return r.queryGuests(ctx, query, args...)
}

func (r *guestRepository) ListByOwner(ctx context.Context, userID int64, search string) ([]*domain.Guest, error) {
	query := `SELECT ` + guestColumns + `
		FROM guests g
		JOIN events e ON g.event_id = e.id
		WHERE e.user_id = $1`
	args := []any{userID}
	if search != "" {
		query += ` AND (g.nama ILIKE '%' || $2 || '%' OR g.email ILIKE '%' || $2 || '%' OR g.telepon ILIKE '%' || $2 || '%')`
		args = append(args, search)
	}
	query += ` ORDER BY g.created_at DESC`
	return r.queryGuests(ctx, query, args...)
}

func (r *guestRepository) StatsByEvent(ctx context.Context, eventID int64) (*domain.GuestStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE) AS today,
			COUNT(*) FILTER (WHERE status = 'checked_in') AS checked_in,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM guests
		WHERE event_id = $1
	`
	stats := &domain.GuestStats{}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&stats.Total, &stats.Today, &stats.CheckedIn, &stats.Pending)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *guestRepository) StatsByOwner(ctx context.Context, userID int64) (*domain.GuestStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE g.created_at::date = CURRENT_DATE) AS today,
			COUNT(*) FILTER (WHERE g.status = 'checked_in') AS checked_in,
			COUNT(*) FILTER (WHERE g.status = 'pending') AS pending
		FROM guests g
		JOIN events e ON g.event_id = e.id
		WHERE e.user_id = $1
	`
	stats := &domain.GuestStats{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&stats.Total, &stats.Today, &stats.CheckedIn, &stats.Pending)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *guestRepository) CheckIn(ctx context.Context, id int64) (*domain.Guest, error) {
	// Unconditional transition: rescanning a checked_in guest re-stamps
	// checked_in_at. Last write wins.
	query := `
		UPDATE guests
		SET status = 'checked_in', checked_in_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + guestReturning
	return r.scanGuest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *guestRepository) queryGuests(ctx context.Context, query string, args ...any) ([]*domain.Guest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g := &domain.Guest{}
		var tableNumber sql.NullString
		var checkedInAt sql.NullTime
		if err := rows.Scan(
			&g.ID, &g.EventID, &g.Nama, &g.Email, &g.Telepon, &g.Pesan, &tableNumber,
			&g.QRToken, &g.Status, &checkedInAt, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applyGuestNulls(g, tableNumber, checkedInAt)
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) scanGuest(row *sql.Row) (*domain.Guest, error) {
	g := &domain.Guest{}
	var tableNumber sql.NullString
	var checkedInAt sql.NullTime
	err := row.Scan(
		&g.ID, &g.EventID, &g.Nama, &g.Email, &g.Telepon, &g.Pesan, &tableNumber,
		&g.QRToken, &g.Status, &checkedInAt, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyGuestNulls(g, tableNumber, checkedInAt)
	return g, nil
}

func applyGuestNulls(g *domain.Guest, tableNumber sql.NullString, checkedInAt sql.NullTime) {
	if tableNumber.Valid {
		g.TableNumber = &tableNumber.String
	}
	if checkedInAt.Valid {
		g.CheckedInAt = &checkedInAt.Time
	}
	g.QRCode = domain.FormatQRCode(g.ID, g.QRToken)
}
