package service

import (
	"context"
	"testing"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventAuthorization(t *testing.T) {
	store, events, _ := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	guest := store.addUser("bob", "bob@example.com", false)

	start := time.Now().Add(24 * time.Hour)
	lat, lng := 12.97, 77.59
	req := &CreateEventRequest{
		Title:        "Jazz Night",
		Description:  "Live jazz at the park",
		Date:         start.Format(entity.DateLayout),
		Time:         start.Format(entity.TimeLayout),
		Category:     "music",
		LocationName: "Cubbon Park",
		Latitude:     &lat,
		Longitude:    &lng,
	}

	// Non-host is refused
	_, err := events.CreateEvent(ctx, guest.ID, req)
	assert.ErrorIs(t, err, entity.ErrNotHost)

	// Unknown user is refused before validation runs
	_, err = events.CreateEvent(ctx, guest.ID+100, req)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	// Host succeeds and the event shows up in the listing
	event, err := events.CreateEvent(ctx, host.ID, req)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, host.ID, event.HostID)
	assert.Equal(t, 12.97, event.Latitude)

	listing, err := events.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, event.ID, listing[0].ID)
	assert.Equal(t, "alice", listing[0].HostUsername)
	assert.Equal(t, 0, listing[0].AttendeeCount)
}

func TestCreateEventValidation(t *testing.T) {
	store, events, _ := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	lat, lng := 12.97, 77.59

	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{
			name:    "past date",
			date:    time.Now().AddDate(0, 0, -1).Format(entity.DateLayout),
			time:    "19:00",
			wantErr: entity.ErrEventDatePast,
		},
		{
			name:    "malformed date",
			date:    "not-a-date",
			time:    "19:00",
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "malformed time",
			date:    time.Now().AddDate(0, 0, 1).Format(entity.DateLayout),
			time:    "late evening",
			wantErr: entity.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := events.CreateEvent(ctx, host.ID, &CreateEventRequest{
				Title:        "Jazz Night",
				Description:  "Live jazz at the park",
				Date:         tt.date,
				Time:         tt.time,
				Category:     "music",
				LocationName: "Cubbon Park",
				Latitude:     &lat,
				Longitude:    &lng,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListEventsNewestFirst(t *testing.T) {
	store, events, _ := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	first := createTestEvent(t, events, host.ID, 24*time.Hour)
	second := createTestEvent(t, events, host.ID, 48*time.Hour)

	listing, err := events.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, second.ID, listing[0].ID)
	assert.Equal(t, first.ID, listing[1].ID)
}

func TestUpdateEventOwnerOnly(t *testing.T) {
	store, events, _ := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	other := store.addUser("bob", "bob@example.com", true)
	event := createTestEvent(t, events, host.ID, 24*time.Hour)

	newTitle := "Blues Night"
	_, err := events.UpdateEvent(ctx, event.ID, other.ID, &UpdateEventRequest{Title: &newTitle})
	assert.ErrorIs(t, err, entity.ErrNotOwner)

	// Missing event reports NotFound, not Forbidden
	_, err = events.UpdateEvent(ctx, event.ID+100, other.ID, &UpdateEventRequest{Title: &newTitle})
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	// Partial update keeps unsupplied fields and accepts an explicit zero
	zeroLat := 0.0
	updated, err := events.UpdateEvent(ctx, event.ID, host.ID, &UpdateEventRequest{
		Title:    &newTitle,
		Latitude: &zeroLat,
	})
	require.NoError(t, err)
	assert.Equal(t, "Blues Night", updated.Title)
	assert.Equal(t, 0.0, updated.Latitude)
	assert.Equal(t, event.Description, updated.Description)
	assert.Equal(t, event.Longitude, updated.Longitude)
}

func TestUpdateEventRecomputesStart(t *testing.T) {
	store, events, _ := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	event := createTestEvent(t, events, host.ID, 24*time.Hour)

	newDate := time.Now().AddDate(0, 0, 7).Format(entity.DateLayout)
	updated, err := events.UpdateEvent(ctx, event.ID, host.ID, &UpdateEventRequest{Date: &newDate})
	require.NoError(t, err)

	wantStart, err := entity.CombineDateTime(newDate, event.Time)
	require.NoError(t, err)
	assert.True(t, updated.StartsAt.Equal(wantStart))
}

func TestDeleteEventOwnerOnly(t *testing.T) {
	store, events, attendance := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	other := store.addUser("bob", "bob@example.com", false)
	event := createTestEvent(t, events, host.ID, 24*time.Hour)

	_, err := attendance.ToggleAttendance(ctx, event.ID, other.ID)
	require.NoError(t, err)

	err = events.DeleteEvent(ctx, event.ID, other.ID)
	assert.ErrorIs(t, err, entity.ErrNotOwner)

	err = events.DeleteEvent(ctx, event.ID+100, other.ID)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	require.NoError(t, events.DeleteEvent(ctx, event.ID, host.ID))

	_, err = events.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	// The attendee's view is cleaned up with the event
	attending, err := attendance.GetAttendingEvents(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, attending)
}

func TestGetRosterOwnerOnly(t *testing.T) {
	store, events, attendance := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	guest := store.addUser("bob", "bob@example.com", false)
	event := createTestEvent(t, events, host.ID, 24*time.Hour)

	_, err := attendance.ToggleAttendance(ctx, event.ID, guest.ID)
	require.NoError(t, err)

	_, err = events.GetRoster(ctx, event.ID, guest.ID)
	assert.ErrorIs(t, err, entity.ErrNotOwner)

	roster, err := events.GetRoster(ctx, event.ID, host.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "bob", roster[0].Username)
	assert.Equal(t, "bob@example.com", roster[0].Email)
}

func TestPurgeExpiredCascades(t *testing.T) {
	store, events, attendance := newTestServices(t)
	ctx := context.Background()

	host := store.addUser("alice", "alice@example.com", true)
	guest := store.addUser("bob", "bob@example.com", false)

	upcoming := createTestEvent(t, events, host.ID, 24*time.Hour)
	_, err := attendance.ToggleAttendance(ctx, upcoming.ID, guest.ID)
	require.NoError(t, err)

	// Seed an already-expired event with an attendance link, as if it expired
	// after the user joined.
	store.nextEventID++
	stale := &entity.Event{
		ID:       store.nextEventID,
		Title:    "Yesterday Concert",
		StartsAt: time.Now().Add(-24 * time.Hour),
		HostID:   host.ID,
	}
	store.events[stale.ID] = stale
	store.links[linkKey{userID: guest.ID, eventID: stale.ID}] = time.Now()

	// Expired events never reach clients even before the sweep runs
	listing, err := events.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, upcoming.ID, listing[0].ID)

	_, err = events.GetEvent(ctx, stale.ID)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	purged, err := events.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// No dangling reference survives the purge
	attending, err := attendance.GetAttendingEvents(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, attending, 1)
	assert.Equal(t, upcoming.ID, attending[0].ID)

	_, exists := store.links[linkKey{userID: guest.ID, eventID: stale.ID}]
	assert.False(t, exists)
}
