package entity

import (
	"time"
)

type Event struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	StartsAt     time.Time `json:"starts_at" db:"starts_at"`
	Category     string    `json:"category" db:"category"`
	LocationName string    `json:"location_name" db:"location_name"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	HostID       int64     `json:"host_id" db:"host_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Expired reports whether the event start has passed the given instant.
// An event starting exactly at now is already considered expired.
func (e *Event) Expired(now time.Time) bool {
	return !e.StartsAt.After(now)
}

type EventWithHost struct {
	Event
	HostUsername  string `json:"host_username"`
	AttendeeCount int    `json:"attendee_count"`
}

type EventDetails struct {
	Event
	Host      PublicUser   `json:"host"`
	Attendees []PublicUser `json:"attendees"`
}
