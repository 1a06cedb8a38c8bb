package frames

import (
	"sync"
)

// Handle is a live element reference: an arena slot plus the generation it
// was mounted under. The zero Handle refers to no element.
type Handle struct {
	slot int
	gen  uint32
}

// Nil is the handle that refers to no element
var Nil = Handle{}

// IsNil reports whether h refers to no element
func (h Handle) IsNil() bool {
	return h.gen == 0
}

// Slot returns the arena index, for logging and stable ordering
func (h Handle) Slot() int {
	return h.slot
}

type slot struct {
	gen   uint32
	live  bool
	frame *Frame // created lazily by GetFrame
}

// Store is the arena of transform frames
type Store struct {
	mu    sync.RWMutex
	slots []slot
	free  []int
}

// NewStore creates an empty frame store
func NewStore() *Store {
	return &Store{}
}

// Mount allocates a slot for a newly mounted element
func (s *Store) Mount() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		sl := &s.slots[idx]
		sl.gen++
		sl.live = true
		sl.frame = nil
		return Handle{slot: idx, gen: sl.gen}
	}

	s.slots = append(s.slots, slot{gen: 1, live: true})
	return Handle{slot: len(s.slots) - 1, gen: 1}
}

// Release frees the slot of an unmounted element. Releasing a stale or nil
// handle does nothing.
func (s *Store) Release(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.lookup(h)
	if sl == nil {
		return
	}
	sl.live = false
	sl.frame = nil
	s.free = append(s.free, h.slot)
}

// Alive reports whether h is currently mounted
func (s *Store) Alive(h Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(h) != nil
}

// GetFrame returns the frame for h, creating the identity frame on first
// access. For a nil or stale handle it returns a detached identity frame.
func (s *Store) GetFrame(h Handle) *Frame {
	s.mu.RLock()
	sl := s.lookup(h)
	if sl != nil && sl.frame != nil {
		f := sl.frame
		s.mu.RUnlock()
		return f
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	sl = s.lookup(h)
	if sl == nil {
		return NewFrame()
	}
	if sl.frame == nil {
		sl.frame = NewFrame()
	}
	return sl.frame
}

// SetField writes a single property of f in place
func (s *Store) SetField(f *Frame, p Property, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.set(p, v)
}

// Update applies several properties to f under one lock, so readers never
// observe a partially applied update
func (s *Store) Update(f *Frame, values map[Property]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, v := range values {
		f.set(p, v)
	}
}

// Style renders the current frame of h
func (s *Store) Style(h Handle) string {
	f := s.GetFrame(h)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f.Style()
}

// Snapshot copies every frame that has been created for a live element
func (s *Store) Snapshot() map[Handle]Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[Handle]Frame)
	for i, sl := range s.slots {
		if sl.live && sl.frame != nil {
			result[Handle{slot: i, gen: sl.gen}] = sl.frame.clone()
		}
	}
	return result
}

// Len returns the number of mounted elements
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots) - len(s.free)
}

// lookup returns the slot for a live handle. Caller holds the lock.
func (s *Store) lookup(h Handle) *slot {
	if h.IsNil() || h.slot < 0 || h.slot >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.slot]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return sl
}
