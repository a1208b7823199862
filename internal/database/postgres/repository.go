package repository

import (
	"context"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id int64) error

	// GetUpcoming returns events starting after the given instant,
	// newest-created-first, with host username and attendee count attached.
	GetUpcoming(ctx context.Context, after time.Time) ([]*entity.EventWithHost, error)

	// DeleteExpired removes events whose start has passed and returns how many
	// rows went away. Attendance rows cascade with the delete.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetHostFlag(ctx context.Context, userID int64, isHost bool) error
}

type AttendanceRepository interface {
	// Exists reports whether the (user, event) link is present.
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	Add(ctx context.Context, eventID, userID int64) error
	Remove(ctx context.Context, eventID, userID int64) error
	CountByEvent(ctx context.Context, eventID int64) (int, error)

	// AttendeesByEvent is the event-side view of the relation.
	AttendeesByEvent(ctx context.Context, eventID int64) ([]*entity.User, error)

	// EventsByUser is the user-side view, restricted to events starting after
	// the given instant so purged or expired events never surface.
	EventsByUser(ctx context.Context, userID int64, after time.Time) ([]*entity.EventWithHost, error)
}
