package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"awguestbook/internal/domain"
)

const (
	eventNameMin = 3
	eventNameMax = 200
)

var (
	eventDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	eventTimeRegexp = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, userID int64, fields domain.EventFields) (*domain.Event, error) {
	fields = normalizeEventFields(fields)
	if err := validateEventFields(fields); err != nil {
		return nil, err
	}
	now := time.Now()
	event := domain.NewEvent(userID, fields.Name, now, now)
	applyEventFields(event, fields)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	return s.getOwned(ctx, userID, eventID)
}

func (s *eventService) List(ctx context.Context, userID int64, includeArchived bool) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByUserID(ctx, userID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, userID, eventID int64, fields domain.EventFields) (*domain.Event, error) {
	event, err := s.getOwned(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	fields = normalizeEventFields(fields)
	if err := validateEventFields(fields); err != nil {
		return nil, err
	}
	applyEventFields(event, fields)
	event.Name = fields.Name
	event.IsArchived = fields.IsArchived
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, userID, eventID int64) error {
	if _, err := s.getOwned(ctx, userID, eventID); err != nil {
		return err
	}
	// Guests go with the event via the FK cascade.
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) Stats(ctx context.Context, userID, eventID int64) (*domain.EventStats, error) {
	if eventID == 0 {
		return nil, domain.ErrNoEventSelected
	}
	if _, err := s.getOwned(ctx, userID, eventID); err != nil {
		return nil, err
	}
	stats, err := s.eventRepo.Stats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}
	return stats, nil
}

func (s *eventService) Switch(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	// Ownership validation only. The current-event preference lives on
	// the client, not in server session state.
	return s.getOwned(ctx, userID, eventID)
}

func (s *eventService) getOwned(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetOwned(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func normalizeEventFields(f domain.EventFields) domain.EventFields {
	f.Name = strings.TrimSpace(f.Name)
	if f.PrimaryColor == "" {
		f.PrimaryColor = domain.DefaultPrimaryColor
	}
	if f.SecondaryColor == "" {
		f.SecondaryColor = domain.DefaultSecondaryColor
	}
	return f
}

func validateEventFields(f domain.EventFields) error {
	fields := map[string]string{}

	switch {
	case f.Name == "":
		fields["name"] = "event name is required"
	case len(f.Name) < eventNameMin:
		fields["name"] = fmt.Sprintf("event name must be at least %d characters", eventNameMin)
	case len(f.Name) > eventNameMax:
		fields["name"] = fmt.Sprintf("event name must be at most %d characters", eventNameMax)
	}

	if f.EventDate != nil && *f.EventDate != "" && !eventDateRegexp.MatchString(*f.EventDate) {
		fields["eventDate"] = "invalid date format (YYYY-MM-DD)"
	}
	if f.EventTime != nil && *f.EventTime != "" && !eventTimeRegexp.MatchString(*f.EventTime) {
		fields["eventTime"] = "invalid time format (HH:MM)"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func applyEventFields(e *domain.Event, f domain.EventFields) {
	e.Name = f.Name
	e.Description = f.Description
	e.EventDate = f.EventDate
	e.EventTime = f.EventTime
	e.Location = f.Location
	e.PrimaryColor = f.PrimaryColor
	e.SecondaryColor = f.SecondaryColor
	e.IsArchived = f.IsArchived
}
