package domain

import (
	"context"
	"time"
)

// Event represents a gathering owned by one user. Deleting an event
// cascades to its guests.
// swagger:model Event
type Event struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	EventDate      *string   `json:"eventDate"`
	EventTime      *string   `json:"eventTime"`
	Location       *string   `json:"location"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
	IsArchived     bool      `json:"isArchived"`
	GuestCount     int       `json:"guestCount"`
	CheckedInCount int       `json:"checkedInCount"`
	PendingCount   int       `json:"pendingCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(userID int64, name string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		UserID:         userID,
		Name:           name,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// Default theming colors applied when a request omits them.
const (
	DefaultPrimaryColor   = "#667eea"
	DefaultSecondaryColor = "#764ba2"
)

// EventFields are the writable fields of an event.
type EventFields struct {
	Name           string
	Description    *string
	EventDate      *string
	EventTime      *string
	Location       *string
	PrimaryColor   string
	SecondaryColor string
	IsArchived     bool
}

// EventStats aggregates attendance for one event, including an hourly
// check-in histogram for the current calendar day.
type EventStats struct {
	Total          int             `json:"total"`
	CheckedIn      int             `json:"checkedIn"`
	Pending        int             `json:"pending"`
	TodayCheckins  int             `json:"todayCheckins"`
	HourlyCheckins []HourlyCheckin `json:"hourlyCheckins"`
}

// HourlyCheckin is one bucket of the check-in histogram.
type HourlyCheckin struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// GetOwned returns the event only when it belongs to userID;
	// any other case is ErrNotFound.
	GetOwned(ctx context.Context, id, userID int64) (*Event, error)
	ListByUserID(ctx context.Context, userID int64, includeArchived bool) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, eventID int64) (*EventStats, error)
}

// EventService defines the business logic for event management.
type EventService interface {
	Create(ctx context.Context, userID int64, fields EventFields) (*Event, error)
	Get(ctx context.Context, userID, eventID int64) (*Event, error)
	List(ctx context.Context, userID int64, includeArchived bool) ([]*Event, error)
	Update(ctx context.Context, userID, eventID int64, fields EventFields) (*Event, error)
	Delete(ctx context.Context, userID, eventID int64) error
	Stats(ctx context.Context, userID, eventID int64) (*EventStats, error)
	// Switch validates ownership of the event the client wants as its
	// current-event preference and returns it. The preference itself is
	// client-held; nothing is stored server-side.
	Switch(ctx context.Context, userID, eventID int64) (*Event, error)
}
