package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awguestbook/internal/domain"
)

func TestEventServiceCreate(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)

	t.Run("applies default colors", func(t *testing.T) {
		event, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Pernikahan Ahmad & Siti"})
		require.NoError(t, err)
		assert.NotZero(t, event.ID)
		assert.Equal(t, int64(1), event.UserID)
		assert.Equal(t, domain.DefaultPrimaryColor, event.PrimaryColor)
		assert.Equal(t, domain.DefaultSecondaryColor, event.SecondaryColor)
		assert.False(t, event.IsArchived)
	})

	t.Run("keeps explicit colors", func(t *testing.T) {
		event, err := svc.Create(context.Background(), 1, domain.EventFields{
			Name:           "Gala Dinner",
			PrimaryColor:   "#112233",
			SecondaryColor: "#445566",
		})
		require.NoError(t, err)
		assert.Equal(t, "#112233", event.PrimaryColor)
		assert.Equal(t, "#445566", event.SecondaryColor)
	})

	tests := []struct {
		name      string
		fields    domain.EventFields
		wantField string
	}{
		{"name missing", domain.EventFields{}, "name"},
		{"name too short", domain.EventFields{Name: "ab"}, "name"},
		{"name too long", domain.EventFields{Name: strings.Repeat("a", 201)}, "name"},
		{"bad date", domain.EventFields{Name: "Wedding", EventDate: ptr("2025-1-01")}, "eventDate"},
		{"bad time", domain.EventFields{Name: "Wedding", EventTime: ptr("1000")}, "eventTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.fields)
			verr, ok := domain.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}

	t.Run("date and time formats accepted", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, domain.EventFields{
			Name:      "Wedding",
			EventDate: ptr("2026-09-12"),
			EventTime: ptr("10:00"),
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), 1, domain.EventFields{
			Name:      "Reception",
			EventDate: ptr("2026-09-12"),
			EventTime: ptr("10:00:00"),
		})
		require.NoError(t, err)
	})
}

func TestEventServiceList(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)

	active, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Active Event"})
	require.NoError(t, err)
	archived, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Old Event"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), 1, archived.ID, domain.EventFields{Name: "Old Event", IsArchived: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, domain.EventFields{Name: "Not Mine"})
	require.NoError(t, err)

	t.Run("archived hidden by default", func(t *testing.T) {
		got, err := svc.List(context.Background(), 1, false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, active.ID, got[0].ID)
	})

	t.Run("archived included on request", func(t *testing.T) {
		got, err := svc.List(context.Background(), 1, true)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestEventServiceOwnership(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)

	event, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Wedding"})
	require.NoError(t, err)

	t.Run("get across tenants is not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), 2, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update across tenants is not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 2, event.ID, domain.EventFields{Name: "Hijacked"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete across tenants is not found", func(t *testing.T) {
		err := svc.Delete(context.Background(), 2, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), 1, event.ID))
		_, err := svc.Get(context.Background(), 1, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventServiceStats(t *testing.T) {
	events := newFakeEventRepo()
	events.stats = &domain.EventStats{
		Total:         10,
		CheckedIn:     4,
		Pending:       6,
		TodayCheckins: 4,
		HourlyCheckins: []domain.HourlyCheckin{
			{Hour: 9, Count: 1},
			{Hour: 10, Count: 3},
		},
	}
	svc := NewEventService(events)

	event, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Wedding"})
	require.NoError(t, err)

	t.Run("returns repository aggregates", func(t *testing.T) {
		stats, err := svc.Stats(context.Background(), 1, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, stats.Total)
		assert.Len(t, stats.HourlyCheckins, 2)
	})

	t.Run("requires an event", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), 1, 0)
		require.ErrorIs(t, err, domain.ErrNoEventSelected)
	})

	t.Run("someone else's event is not found", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), 2, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventServiceSwitch(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events)

	event, err := svc.Create(context.Background(), 1, domain.EventFields{Name: "Wedding"})
	require.NoError(t, err)

	t.Run("owner switches", func(t *testing.T) {
		got, err := svc.Switch(context.Background(), 1, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, got.ID)
	})

	t.Run("non-owner cannot switch", func(t *testing.T) {
		_, err := svc.Switch(context.Background(), 2, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func ptr(s string) *string { return &s }
