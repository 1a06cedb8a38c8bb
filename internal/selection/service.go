package selection

import (
	"time"

	"artboard/internal/domain"
	"artboard/internal/eventbus"
	"artboard/internal/frames"
)

// Service handles selection logic
type Service struct {
	state    *State
	bus      eventbus.EventBus
	registry *Registry
	lockedFn func() bool // reports an active gesture
	now      func() time.Time
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state:    &State{},
		bus:      bus,
		registry: NewRegistry(),
		now:      time.Now,
	}
}

// SetLockFunction sets the function reporting whether a gesture is active
func (s *Service) SetLockFunction(fn func() bool) {
	s.lockedFn = fn
}

// SetClock replaces the time source used for LastEvent
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Locked reports whether selection input is currently suppressed
func (s *Service) Locked() bool {
	return s.lockedFn != nil && s.lockedFn()
}

// Registry returns the selectable registry
func (s *Service) Registry() *Registry {
	return s.registry
}

// SelectSingle applies a single-target selection. A nil target clears the
// selection. With ctrl held the target is toggled in or out; without ctrl the
// selection becomes exactly the target. then runs once the new selection is
// visible. Suppressed while a gesture is active.
func (s *Service) SelectSingle(target frames.Handle, ctrlActive bool, then func()) []frames.Handle {
	if s.Locked() {
		return s.Selected()
	}

	var next []frames.Handle
	if !target.IsNil() {
		index := s.indexOf(target)
		switch {
		case index == -1 && ctrlActive:
			next = append(s.Selected(), target)
		case index == -1:
			next = []frames.Handle{target}
		case ctrlActive:
			next = s.Selected()
			next = append(next[:index], next[index+1:]...)
		default:
			next = []frames.Handle{target}
		}
	}

	s.commit(next, target, false, then)
	return s.Selected()
}

// SelectMultiple replaces the selection with a batch reported by the marquee.
// Duplicates are dropped; order is kept. Suppressed while a gesture is active.
func (s *Service) SelectMultiple(targets []frames.Handle, then func()) []frames.Handle {
	if s.Locked() {
		return s.Selected()
	}

	next := dedupe(targets)
	primary := frames.Nil
	if len(next) > 0 {
		primary = next[0]
	}

	s.commit(next, primary, true, then)
	return s.Selected()
}

// ClickGroup applies a click on a member of a group selection. Clicks whose
// input target is not an element wrapper are ignored.
func (s *Service) ClickGroup(inputTarget frames.Handle, isWrapper, ctrlActive bool, then func()) []frames.Handle {
	if !isWrapper || inputTarget.IsNil() {
		return s.Selected()
	}

	var next []frames.Handle
	if ctrlActive {
		next = s.Selected()
		if index := s.indexOf(inputTarget); index == -1 {
			next = append(next, inputTarget)
		} else {
			next = append(next[:index], next[index+1:]...)
		}
	} else {
		next = []frames.Handle{inputTarget}
	}

	s.commit(next, inputTarget, false, then)
	return s.Selected()
}

// Remove drops handles from the selection, e.g. when elements unmount
func (s *Service) Remove(handles ...frames.Handle) {
	changed := false
	for _, h := range handles {
		if index := s.indexOf(h); index != -1 {
			s.state.Selected = append(s.state.Selected[:index:index], s.state.Selected[index+1:]...)
			changed = true
		}
	}

	if changed {
		s.bus.Publish(domain.SelectionChangedEvent{
			Total: len(s.state.Selected),
			At:    s.now(),
		})
	}
}

// Clear empties the selection
func (s *Service) Clear(then func()) []frames.Handle {
	return s.SelectSingle(frames.Nil, false, then)
}

// IsSelected reports whether h is selected
func (s *Service) IsSelected(h frames.Handle) bool {
	return s.indexOf(h) != -1
}

// Selected returns a copy of the ordered selection
func (s *Service) Selected() []frames.Handle {
	return append([]frames.Handle(nil), s.state.Selected...)
}

// Count returns the number of selected elements
func (s *Service) Count() int {
	return len(s.state.Selected)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.Selected) > 0
}

// LastEvent returns the most recent selection action
func (s *Service) LastEvent() LastEvent {
	return s.state.LastEvent
}

// commit stores the new selection, records the event and then runs the
// continuation exactly once
func (s *Service) commit(next []frames.Handle, primary frames.Handle, multi bool, then func()) {
	at := s.now()
	s.state.Selected = next
	s.state.LastEvent = LastEvent{Time: at, Element: primary}

	s.bus.Publish(domain.SelectionChangedEvent{
		Total: len(next),
		At:    at,
		Multi: multi,
	})

	if then != nil {
		then()
	}
}

func (s *Service) indexOf(h frames.Handle) int {
	for i, sel := range s.state.Selected {
		if sel == h {
			return i
		}
	}
	return -1
}

func dedupe(in []frames.Handle) []frames.Handle {
	seen := make(map[frames.Handle]bool, len(in))
	out := make([]frames.Handle, 0, len(in))
	for _, h := range in {
		if h.IsNil() || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
