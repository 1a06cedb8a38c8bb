package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventGestureStarted   EventType = "GestureStarted"
	EventGestureEnded     EventType = "GestureEnded"
	EventFrameCommitted   EventType = "FrameCommitted"
	EventSelectionChanged EventType = "SelectionChanged"
	EventLockChanged      EventType = "LockChanged"
	EventModifierChanged  EventType = "ModifierChanged"
	EventElementMounted   EventType = "ElementMounted"
	EventElementUnmounted EventType = "ElementUnmounted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// GestureStartedEvent is emitted when a drag, resize or rotate gesture begins
type GestureStartedEvent struct {
	Kind    string
	Group   bool
	Targets int
}

func (e GestureStartedEvent) Type() EventType { return EventGestureStarted }

// GestureEndedEvent is emitted when a gesture ends, matched or not
type GestureEndedEvent struct {
	Kind    string
	Group   bool
	Matched bool // false when no start was observed
}

func (e GestureEndedEvent) Type() EventType { return EventGestureEnded }

// FrameCommittedEvent is emitted after a progress event commits a frame
type FrameCommittedEvent struct {
	Slot  int
	Style string
}

func (e FrameCommittedEvent) Type() EventType { return EventFrameCommitted }

// SelectionChangedEvent is emitted on every selection change
type SelectionChangedEvent struct {
	Total int
	At    time.Time
	Multi bool // true when a batch replaced the selection
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// LockChangedEvent is emitted when the interaction lock flips
type LockChangedEvent struct {
	Locked bool
}

func (e LockChangedEvent) Type() EventType { return EventLockChanged }

// ModifierChangedEvent is emitted when a tracked modifier key changes state
type ModifierChangedEvent struct {
	Key  string
	Down bool
}

func (e ModifierChangedEvent) Type() EventType { return EventModifierChanged }

// ElementMountedEvent is emitted once an element is registered as selectable
type ElementMountedEvent struct {
	ID ElementID
}

func (e ElementMountedEvent) Type() EventType { return EventElementMounted }

// ElementUnmountedEvent is emitted when an element's frame slot is released
type ElementUnmountedEvent struct {
	ID ElementID
}

func (e ElementUnmountedEvent) Type() EventType { return EventElementUnmounted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
