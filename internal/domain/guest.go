package domain

import (
	"context"
	"time"
)

// Guest attendance states. A guest only ever moves pending -> checked_in;
// there is no path back.
const (
	StatusPending   = "pending"
	StatusCheckedIn = "checked_in"
)

// Guest represents a registered attendee scoped to one event, carrying a
// unique verification token embedded in the scannable code.
// swagger:model Guest
type Guest struct {
	ID          int64      `json:"id"`
	EventID     int64      `json:"eventId"`
	Nama        string     `json:"nama"`
	Email       string     `json:"email"`
	Telepon     string     `json:"telepon"`
	Pesan       string     `json:"pesan"`
	TableNumber *string    `json:"tableNumber"`
	QRToken     string     `json:"qrToken"`
	QRCode      string     `json:"qrCode"`
	Status      string     `json:"status"`
	CheckedInAt *time.Time `json:"checkedInAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GuestFields are the writable fields of a guest record. The QR token is
// never writable; it is generated once on create.
type GuestFields struct {
	Nama        string
	Email       string
	Telepon     string
	Pesan       string
	TableNumber *string
}

// GuestStats aggregates registrations for a scope.
type GuestStats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	CheckedIn int `json:"checkedIn"`
	Pending   int `json:"pending"`
}

// GuestRepository defines the interface for guest storage.
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id int64) (*Guest, error)
	// GetByIDAndToken matches both parts of a scanned code in a single
	// statement; a mismatch on either is ErrNotFound.
	GetByIDAndToken(ctx context.Context, id int64, token string) (*Guest, error)
	Update(ctx context.Context, guest *Guest) error
	Delete(ctx context.Context, id int64) error
	// ListByEvent returns guests of one event; ListByOwner returns guests
	// across every event the user owns. Search is a case-insensitive
	// substring match on nama, email, and telepon.
	ListByEvent(ctx context.Context, eventID int64, search string) ([]*Guest, error)
	ListByOwner(ctx context.Context, userID int64, search string) ([]*Guest, error)
	StatsByEvent(ctx context.Context, eventID int64) (*GuestStats, error)
	StatsByOwner(ctx context.Context, userID int64) (*GuestStats, error)
	CheckIn(ctx context.Context, id int64) (*Guest, error)
}

// GuestService defines the business logic for the guest registry.
type GuestService interface {
	Create(ctx context.Context, userID, eventID int64, fields GuestFields) (*Guest, error)
	Get(ctx context.Context, userID, guestID int64) (*Guest, error)
	Update(ctx context.Context, userID, guestID int64, fields GuestFields) (*Guest, error)
	Delete(ctx context.Context, userID, guestID int64) error
	// List with eventID 0 covers all events owned by userID.
	List(ctx context.Context, userID, eventID int64, search string) ([]*Guest, error)
	Stats(ctx context.Context, userID, eventID int64) (*GuestStats, error)
}
