package selection

import (
	"sync"

	"artboard/internal/domain"
	"artboard/internal/frames"
)

// Registry maps element identifiers to live handles. frames.Nil means the
// identifier is known but its element is not mounted yet.
//
// Entries are never dropped on unmount; a stale entry keeps answering
// lookups as if it were still registered.
type Registry struct {
	mu      sync.RWMutex
	entries map[domain.ElementID]frames.Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[domain.ElementID]frames.Handle),
	}
}

// Register records id -> h. An id that already maps to a mounted handle is
// left alone. Returns whether the registry changed.
func (r *Registry) Register(id domain.ElementID, h frames.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[id]; ok && !existing.IsNil() {
		return false
	}
	if existing, ok := r.entries[id]; ok && existing == h {
		return false
	}
	r.entries[id] = h
	return true
}

// Unregister acknowledges an unmount. The entry is kept.
func (r *Registry) Unregister(id domain.ElementID) {}

// Lookup returns the handle registered for id
func (r *Registry) Lookup(id domain.ElementID) (frames.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.entries[id]
	return h, ok
}

// IDOf returns the identifier registered for h
func (r *Registry) IDOf(h frames.Handle) (domain.ElementID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, registered := range r.entries {
		if registered == h && !h.IsNil() {
			return id, true
		}
	}
	return "", false
}

// Selectables returns a copy of the registry
func (r *Registry) Selectables() map[domain.ElementID]frames.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[domain.ElementID]frames.Handle, len(r.entries))
	for k, v := range r.entries {
		result[k] = v
	}
	return result
}

// Len returns the number of registered identifiers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
