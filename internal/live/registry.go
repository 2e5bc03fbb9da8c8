package live

import (
	"sync"
)

// Pusher is a live connection handle capable of delivering one
// serialized payload. Implementations must be safe for use by
// concurrent dispatchers.
type Pusher interface {
	Push(payload []byte) error
}

// Registry maps a user identity to its currently-open live connection.
// One identity holds at most one handle; a new registration replaces
// the old one. The registry never blocks on I/O.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Pusher
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Pusher),
	}
}

// Register associates userID with handle, replacing any prior handle.
func (r *Registry) Register(userID string, handle Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = handle
}

// Unregister removes the association for userID if present.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, userID)
}

// Drop removes the association only while handle is still the one
// registered for userID. A connection that was replaced and then
// closed must not evict its successor.
func (r *Registry) Drop(userID string, handle Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[userID]; ok && current == handle {
		delete(r.conns, userID)
	}
}

// Lookup returns the current handle for userID, if any.
func (r *Registry) Lookup(userID string) (Pusher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.conns[userID]
	return handle, ok
}
