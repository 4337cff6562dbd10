package booking

import (
	"sync"

	"github.com/nazaclinic/booking-api/internal/model"
)

// dateLocks serializes check-then-commit sequences per calendar date.
// Operations on different dates proceed fully concurrently; two racing
// bookings for the same date queue behind one mutex, so exactly one of
// two overlapping attempts can win.
type dateLocks struct {
	mu    sync.Mutex
	locks map[model.Date]*dateLock
}

type dateLock struct {
	mu   sync.Mutex
	refs int
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[model.Date]*dateLock)}
}

// acquire blocks until the date's lock is held and returns the release
// function. Entries are dropped once no caller holds or waits on them.
func (l *dateLocks) acquire(date model.Date) func() {
	l.mu.Lock()
	entry, ok := l.locks[date]
	if !ok {
		entry = &dateLock{}
		l.locks[date] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, date)
		}
		l.mu.Unlock()
	}
}
