package selection

import (
	"time"

	"artboard/internal/frames"
)

// State holds selection state
type State struct {
	Selected  []frames.Handle // ordered, unique
	LastEvent LastEvent
}

// LastEvent is the most recent selection action, kept apart from the set so
// collaborators can tell a click from the start of a drag
type LastEvent struct {
	Time    time.Time
	Element frames.Handle // frames.Nil when the action cleared the selection
}
