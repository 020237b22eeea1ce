package seating

import (
	"sync"

	"github.com/google/uuid"
)

// seatLocks serializes mutations per seat. Every read-then-write sequence in
// the mutator runs under the seat's lock so two racing callers cannot both
// observe a vacant seat and both insert primary rows. Locks are only ever
// taken one seat at a time.
type seatLocks struct {
	mu    sync.Mutex
	seats map[uuid.UUID]*sync.Mutex
}

func newSeatLocks() *seatLocks {
	return &seatLocks{seats: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the mutex for seatID and returns the unlock func.
func (l *seatLocks) lock(seatID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.seats[seatID]
	if !ok {
		m = &sync.Mutex{}
		l.seats[seatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
