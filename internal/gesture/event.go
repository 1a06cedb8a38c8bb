package gesture

import (
	"fmt"

	"artboard/internal/frames"
)

// Kind is the gesture kind
type Kind int

const (
	KindDrag Kind = iota
	KindResize
	KindRotate
	KindClick
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindResize:
		return "resize"
	case KindRotate:
		return "rotate"
	case KindClick:
		return "click"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Phase is the lifecycle position of an event within its gesture
type Phase int

const (
	PhaseStart Phase = iota
	PhaseProgress
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseProgress:
		return "progress"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Scope tells single-target events from group events
type Scope int

const (
	ScopeSingle Scope = iota
	ScopeGroup
)

// Setter receives baseline values from the coordinator at gesture start
type Setter func(values ...float64)

// OriginSetter receives the transform origin the coordinator wants
type OriginSetter func(origin ...string)

// DragInfo is the nested translation a resize or rotate produces
type DragInfo struct {
	BeforeTranslate [2]float64
}

// Event is one gesture lifecycle event from the recognizer. Group events
// carry one sub-event per target in Events.
type Event struct {
	Kind  Kind
	Phase Phase
	Scope Scope

	Target  frames.Handle
	Targets []frames.Handle
	Events  []Event

	// Start
	Set       Setter
	SetOrigin OriginSetter
	DragStart Setter

	// Progress
	BeforeTranslate [2]float64 // drag: absolute translation
	Delta           [2]float64 // drag: change since the previous event
	Left, Top       float64    // drag: element position, for feedback
	Width, Height   float64    // resize
	BeforeDelta     float64    // rotate: signed angle since gesture start
	Drag            *DragInfo  // resize/rotate translation correction
	ClientX         float64
	ClientY         float64
	IsPinch         bool

	// End
	IsDrag bool

	// Click
	InputTarget    frames.Handle
	InputIsWrapper bool
}

// targets returns every handle an event refers to
func (e Event) targets() []frames.Handle {
	if len(e.Targets) > 0 {
		return e.Targets
	}
	if len(e.Events) > 0 {
		out := make([]frames.Handle, 0, len(e.Events))
		for _, sub := range e.Events {
			out = append(out, sub.Target)
		}
		return out
	}
	if !e.Target.IsNil() {
		return []frames.Handle{e.Target}
	}
	return nil
}
