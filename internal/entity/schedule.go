package entity

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	startLayout = "2006-01-02T15:04"
)

// CombineDateTime parses the separate date and time fields of an event into
// the single instant the event starts at, in the local timezone.
func CombineDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(startLayout, date+"T"+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date/time %q %q", ErrInvalidInput, date, clock)
	}
	return t, nil
}
