package postgres

import (
	"context"
	"database/sql"
	"errors"

	"awguestbook/internal/domain"
)

// eventColumns is the select list shared by every event query. The three
// counts are correlated subqueries so listings carry attendance totals
// without a second round trip.
const eventColumns = `
	e.id, e.user_id, e.name, e.description, e.event_date, e.event_time, e.location,
	e.primary_color, e.secondary_color, e.is_archived, e.created_at, e.updated_at,
	(SELECT COUNT(*) FROM guests WHERE event_id = e.id) AS guest_count,
	(SELECT COUNT(*) FROM guests WHERE event_id = e.id AND status = 'checked_in') AS checked_in_count,
	(SELECT COUNT(*) FROM guests WHERE event_id = e.id AND status = 'pending') AS pending_count
`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (user_id, name, description, event_date, event_time, location, primary_color, secondary_color, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.UserID, e.Name, e.Description, e.EventDate, e.EventTime, e.Location,
		e.PrimaryColor, e.SecondaryColor, e.IsArchived, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetOwned(ctx context.Context, id, userID int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1 AND e.user_id = $2`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, id, userID))
}

func (r *eventRepository) ListByUserID(ctx context.Context, userID int64, includeArchived bool) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.user_id = $1`
	if !includeArchived {
		query += ` AND e.is_archived = FALSE`
	}
	query += ` ORDER BY e.event_date DESC NULLS LAST, e.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := r.scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, event_date = $4, event_time = $5, location = $6,
		    primary_color = $7, secondary_color = $8, is_archived = $9, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.EventDate, e.EventTime, e.Location,
		e.PrimaryColor, e.SecondaryColor, e.IsArchived,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Stats(ctx context.Context, eventID int64) (*domain.EventStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'checked_in') AS checked_in,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE checked_in_at::date = CURRENT_DATE) AS today_checkins
		FROM guests
		WHERE event_id = $1
	`
	stats := &domain.EventStats{HourlyCheckins: []domain.HourlyCheckin{}}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(
		&stats.Total, &stats.CheckedIn, &stats.Pending, &stats.TodayCheckins,
	)
	if err != nil {
		return nil, err
	}

	hourly := `
		SELECT EXTRACT(HOUR FROM checked_in_at)::int AS hour, COUNT(*) AS count
		FROM guests
		WHERE event_id = $1 AND checked_in_at::date = CURRENT_DATE
		GROUP BY hour
		ORDER BY hour
	`
	rows, err := r.DB.QueryContext(ctx, hourly, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var h domain.HourlyCheckin
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, err
		}
		stats.HourlyCheckins = append(stats.HourlyCheckins, h)
	}
	return stats, rows.Err()
}

func (r *eventRepository) scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var desc, date, timeOfDay, location sql.NullString
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &desc, &date, &timeOfDay, &location,
		&e.PrimaryColor, &e.SecondaryColor, &e.IsArchived, &e.CreatedAt, &e.UpdatedAt,
		&e.GuestCount, &e.CheckedInCount, &e.PendingCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyEventNulls(e, desc, date, timeOfDay, location)
	return e, nil
}

func (r *eventRepository) scanEventRow(rows *sql.Rows) (*domain.Event, error) {
	e := &domain.Event{}
	var desc, date, timeOfDay, location sql.NullString
	err := rows.Scan(
		&e.ID, &e.UserID, &e.Name, &desc, &date, &timeOfDay, &location,
		&e.PrimaryColor, &e.SecondaryColor, &e.IsArchived, &e.CreatedAt, &e.UpdatedAt,
		&e.GuestCount, &e.CheckedInCount, &e.PendingCount,
	)
	if err != nil {
		return nil, err
	}
	applyEventNulls(e, desc, date, timeOfDay, location)
	return e, nil
}

func applyEventNulls(e *domain.Event, desc, date, timeOfDay, location sql.NullString) {
	if desc.Valid {
		e.Description = &desc.String
	}
	if date.Valid {
		e.EventDate = &date.String
	}
	if timeOfDay.Valid {
		e.EventTime = &timeOfDay.String
	}
	if location.Valid {
		e.Location = &location.String
	}
}
