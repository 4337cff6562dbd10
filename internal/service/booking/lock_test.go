package booking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nazaclinic/booking-api/internal/model"
)

func TestDateLocksSerializeSameDate(t *testing.T) {
	locks := newDateLocks()
	date := model.Date("2026-08-29")

	const workers = 8
	var inCritical, maxInCritical int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.acquire(date)
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInCritical, "at most one holder per date")
}

func TestDateLocksIndependentDates(t *testing.T) {
	locks := newDateLocks()

	unlockA := locks.acquire(model.Date("2026-08-29"))
	// A held lock on one date never blocks another date.
	unlockB := locks.acquire(model.Date("2026-08-30"))

	unlockB()
	unlockA()
}

func TestDateLocksCleanup(t *testing.T) {
	locks := newDateLocks()
	date := model.Date("2026-08-29")

	unlock := locks.acquire(date)
	locks.mu.Lock()
	assert.Len(t, locks.locks, 1)
	locks.mu.Unlock()

	unlock()
	locks.mu.Lock()
	assert.Empty(t, locks.locks, "released entries are dropped")
	locks.mu.Unlock()
}

func TestDateLocksReentryAfterRelease(t *testing.T) {
	locks := newDateLocks()
	date := model.Date("2026-08-29")

	unlock := locks.acquire(date)
	unlock()
	unlock = locks.acquire(date)
	unlock()
}
