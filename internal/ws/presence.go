package ws

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which users hold live connections. A user with several
// tabs counts once; anonymous connections are not counted at all.
type Registry struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]int
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[uuid.UUID]int)}
}

func (r *Registry) Connect(userID uuid.UUID) {
	r.mu.Lock()
	r.conns[userID]++
	r.mu.Unlock()
}

func (r *Registry) Disconnect(userID uuid.UUID) {
	r.mu.Lock()
	if n, ok := r.conns[userID]; ok {
		if n <= 1 {
			delete(r.conns, userID)
		} else {
			r.conns[userID] = n - 1
		}
	}
	r.mu.Unlock()
}

// CountActiveUsers returns the number of distinct connected users.
func (r *Registry) CountActiveUsers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// IsOnline reports whether a user holds at least one live connection.
func (r *Registry) IsOnline(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[userID] > 0
}
