package service

import (
	"context"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

type EventService interface {
	CreateEvent(ctx context.Context, hostID int64, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.EventDetails, error)
	ListEvents(ctx context.Context) ([]*entity.EventWithHost, error)
	UpdateEvent(ctx context.Context, id, userID int64, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id, userID int64) error

	// GetRoster returns the full attendee roster, restricted to the host of
	// the event.
	GetRoster(ctx context.Context, eventID, userID int64) ([]entity.PublicUser, error)

	// PurgeExpired removes every event whose start has passed, together with
	// all attendance rows referencing it.
	PurgeExpired(ctx context.Context) (int64, error)
}

type AttendanceService interface {
	// ToggleAttendance flips the caller's membership in the event's attendee
	// set and reports the resulting state. The user id comes from the
	// authenticated token, never from request parameters.
	ToggleAttendance(ctx context.Context, eventID, userID int64) (*entity.ToggleResult, error)

	GetAttendingEvents(ctx context.Context, userID int64) ([]*entity.EventWithHost, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*entity.PublicUser, error)
	ToggleHost(ctx context.Context, userID int64) (*entity.PublicUser, error)
}

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

// ListingCache is the read-through cache for the public event listing.
// Implementations may be nil-safe absent; services tolerate a nil cache.
type ListingCache interface {
	GetListing(ctx context.Context) ([]*entity.EventWithHost, error)
	SetListing(ctx context.Context, events []*entity.EventWithHost) error
	InvalidateListing(ctx context.Context) error
}
