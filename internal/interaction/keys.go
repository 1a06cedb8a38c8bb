// Package interaction holds the transient interaction state of a board:
// the modifier keys currently held and the lock that suppresses selection
// changes while a gesture is in progress.
package interaction

import (
	"artboard/internal/domain"
	"artboard/internal/eventbus"
)

// Tracked keys
const (
	KeyShift  = "shift"
	KeyCtrl   = "ctrl"
	KeyToggle = "r"
)

// Keys tracks modifier key state. State strictly follows down/up pairs;
// Blur clears everything for the case where a key-up never arrives.
type Keys struct {
	down map[string]bool
	bus  eventbus.EventBus
}

// NewKeys creates a tracker for shift, ctrl and the toggle key
func NewKeys(bus eventbus.EventBus) *Keys {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Keys{
		down: map[string]bool{KeyShift: false, KeyCtrl: false, KeyToggle: false},
		bus:  bus,
	}
}

// KeyDown records a key press. Returns false for untracked keys and for
// repeats of a key already down.
func (k *Keys) KeyDown(key string) bool {
	isDown, tracked := k.down[key]
	if !tracked || isDown {
		return false
	}
	k.down[key] = true
	k.bus.Publish(domain.ModifierChangedEvent{Key: key, Down: true})
	return true
}

// KeyUp records a key release. Only meaningful if the key was down.
func (k *Keys) KeyUp(key string) bool {
	if !k.down[key] {
		return false
	}
	k.down[key] = false
	k.bus.Publish(domain.ModifierChangedEvent{Key: key, Down: false})
	return true
}

// Toggle flips a key, for hosts that only see presses
func (k *Keys) Toggle(key string) bool {
	if k.down[key] {
		return k.KeyUp(key)
	}
	return k.KeyDown(key)
}

// Blur releases every key that is down, e.g. when the window loses focus
func (k *Keys) Blur() {
	for key, isDown := range k.down {
		if isDown {
			k.KeyUp(key)
		}
	}
}

// Reset clears all state without publishing; used on teardown
func (k *Keys) Reset() {
	for key := range k.down {
		k.down[key] = false
	}
}

// IsDown reports whether key is currently held
func (k *Keys) IsDown(key string) bool {
	return k.down[key]
}

// Shift reports the constrain modifier
func (k *Keys) Shift() bool { return k.down[KeyShift] }

// Ctrl reports the multi-select modifier
func (k *Keys) Ctrl() bool { return k.down[KeyCtrl] }

// ToggleKey reports the mode-toggle key
func (k *Keys) ToggleKey() bool { return k.down[KeyToggle] }

// Snapshot returns the current flags
func (k *Keys) Snapshot() State {
	return State{Shift: k.Shift(), Ctrl: k.Ctrl(), Toggle: k.ToggleKey()}
}
