package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, starts_at, category, location_name, latitude, longitude, host_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.StartsAt,
		event.Category,
		event.LocationName,
		event.Latitude,
		event.Longitude,
		event.HostID,
		now,
		now,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `
		SELECT id, title, description, date, time, starts_at, category, location_name, latitude, longitude, host_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.StartsAt,
		&event.Category,
		&event.LocationName,
		&event.Latitude,
		&event.Longitude,
		&event.HostID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, starts_at = $5, category = $6, location_name = $7, latitude = $8, longitude = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.StartsAt,
		event.Category,
		event.LocationName,
		event.Latitude,
		event.Longitude,
		time.Now(),
		event.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) GetUpcoming(ctx context.Context, after time.Time) ([]*entity.EventWithHost, error) {
	query := `
		SELECT
			e.id, e.title, e.description, e.date, e.time, e.starts_at, e.category, e.location_name, e.latitude, e.longitude, e.host_id, e.created_at, e.updated_at,
			u.username,
			COUNT(a.user_id) as attendee_count
		FROM events e
		JOIN users u ON u.id = e.host_id
		LEFT JOIN attendance a ON a.event_id = e.id
		WHERE e.starts_at > $1
		GROUP BY e.id, u.username
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming events: %w", err)
	}
	defer rows.Close()

	var events []*entity.EventWithHost
	for rows.Next() {
		var event entity.EventWithHost
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Time,
			&event.StartsAt,
			&event.Category,
			&event.LocationName,
			&event.Latitude,
			&event.Longitude,
			&event.HostID,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.HostUsername,
			&event.AttendeeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

func (r *eventRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	// Attendance rows go with the event via ON DELETE CASCADE, so a single
	// statement removes the event and every user's reference to it together.
	query := `DELETE FROM events WHERE starts_at <= $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired events: %w", err)
	}

	return result.RowsAffected()
}
