package interaction

import (
	"artboard/internal/domain"
	"artboard/internal/eventbus"
)

// Lock is the single flag that suppresses selection changes while a gesture
// is active. Acquire and Release are idempotent and not reference counted:
// callers must keep acquire/release strictly paired.
type Lock struct {
	locked bool
	bus    eventbus.EventBus
}

// NewLock creates an unlocked lock
func NewLock(bus eventbus.EventBus) *Lock {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Lock{bus: bus}
}

// Acquire marks a gesture as active
func (l *Lock) Acquire() {
	if l.locked {
		return
	}
	l.locked = true
	l.bus.Publish(domain.LockChangedEvent{Locked: true})
}

// Release clears the lock. Safe to call when not locked.
func (l *Lock) Release() {
	if !l.locked {
		return
	}
	l.locked = false
	l.bus.Publish(domain.LockChangedEvent{Locked: false})
}

// Locked reports whether a gesture is active
func (l *Lock) Locked() bool {
	return l.locked
}

// State is a point-in-time copy of the interaction flags
type State struct {
	Shift            bool
	Ctrl             bool
	Toggle           bool
	HasActiveGesture bool
}
