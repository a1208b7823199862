package entity

import "time"

// Attendance is the single source of truth for the "user is interested in
// event" relation. Both the event's attendee roster and the user's attending
// list are views derived from these rows, so the two can never disagree.
type Attendance struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToggleResult reports the membership state after a toggle call.
type ToggleResult struct {
	IsAttending   bool `json:"is_attending"`
	AttendeeCount int  `json:"attendee_count"`
}
