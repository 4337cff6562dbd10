package clock

import "time"

// Clock abstracts "now" so date-relative logic stays testable.
type Clock interface {
	Now() time.Time
	// Today returns the current date truncated to midnight local time.
	Today() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
