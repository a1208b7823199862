package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

type attendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM attendance WHERE event_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

func (r *attendanceRepository) Add(ctx context.Context, eventID, userID int64) error {
	// ON CONFLICT keeps the insert idempotent under concurrent toggles by the
	// same user; the primary key rules out duplicate links.
	query := `
		INSERT INTO attendance (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to add attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) Remove(ctx context.Context, eventID, userID int64) error {
	query := `DELETE FROM attendance WHERE event_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		return fmt.Errorf("failed to remove attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	query := `SELECT COUNT(*) FROM attendance WHERE event_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendees: %w", err)
	}
	return count, nil
}

func (r *attendanceRepository) AttendeesByEvent(ctx context.Context, eventID int64) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_host, u.created_at
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.event_id = $1
		ORDER BY a.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *attendanceRepository) EventsByUser(ctx context.Context, userID int64, after time.Time) ([]*entity.EventWithHost, error) {
	query := `
		SELECT
			e.id, e.title, e.description, e.date, e.time, e.starts_at, e.category, e.location_name, e.latitude, e.longitude, e.host_id, e.created_at, e.updated_at,
			u.username,
			(SELECT COUNT(*) FROM attendance WHERE event_id = e.id) as attendee_count
		FROM attendance a
		JOIN events e ON e.id = a.event_id
		JOIN users u ON u.id = e.host_id
		WHERE a.user_id = $1 AND e.starts_at > $2
		ORDER BY e.starts_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query attending events: %w", err)
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

func scanUsers(rows *sql.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.IsHost,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
