package service

import (
	"fmt"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

// requireHost fails unless the user has opted into hosting.
func requireHost(user *entity.User) error {
	if !user.IsHost {
		return entity.ErrNotHost
	}
	return nil
}

// requireOwner fails unless the event belongs to the given user.
func requireOwner(event *entity.Event, userID int64) error {
	if event.HostID != userID {
		return entity.ErrNotOwner
	}
	return nil
}

// requireFutureStart rejects a start instant already in the past. Applied at
// creation only; edits may knowingly leave a date behind.
func requireFutureStart(startsAt, now time.Time) error {
	if startsAt.Before(now) {
		return fmt.Errorf("%w: %s", entity.ErrEventDatePast, startsAt.Format(time.RFC3339))
	}
	return nil
}
