package service

import (
	"sync"

	"github.com/google/uuid"
)

// incidentLocks serializes membership and status transitions per incident.
// Entries are refcounted so the table does not grow with incident count.
type incidentLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newIncidentLocks() *incidentLocks {
	return &incidentLocks{locks: make(map[uuid.UUID]*lockEntry)}
}

func (l *incidentLocks) Lock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *incidentLocks) Unlock(id uuid.UUID) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
