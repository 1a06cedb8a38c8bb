// Package gesture turns recognizer events into frame updates.
//
// Every drag, resize, rotate and click arrives as one tagged Event and goes
// through Coordinator.Handle. Group events fan out to the same per-target
// code path as single events, so both share one set of constraint rules; the
// only group-specific behavior is that the interaction lock is taken and
// released once for the whole group and only the group end hides the
// tooltip.
//
// Progress events commit synchronously: the frame is updated and the render
// callback runs before Handle returns.
package gesture

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"artboard/internal/domain"
	"artboard/internal/eventbus"
	"artboard/internal/frames"
	"artboard/internal/interaction"
	"artboard/internal/selection"
	"artboard/internal/tooltip"
)

// Recognizer is the part of the gesture recognizer the coordinator calls back
type Recognizer interface {
	// UpdateRect re-reads the target rectangle after a selection change
	UpdateRect()
}

// RenderFunc applies a frame's style to an element's visual
type RenderFunc func(h frames.Handle, style string)

// session is the committed state of one target at gesture start
type session struct {
	kind       Kind
	startX     float64
	startY     float64
	startAngle float64
}

// Coordinator applies gesture events to the frame store
type Coordinator struct {
	store      *frames.Store
	keys       *interaction.Keys
	lock       *interaction.Lock
	tip        *tooltip.Tooltip
	selection  *selection.Service
	recognizer Recognizer
	render     RenderFunc
	bus        eventbus.EventBus
	logger     *log.Logger

	base          Options
	shiftThrottle float64

	sessions map[frames.Handle]*session
}

// Deps groups the collaborators a coordinator needs
type Deps struct {
	Store     *frames.Store
	Keys      *interaction.Keys
	Lock      *interaction.Lock
	Tooltip   *tooltip.Tooltip
	Selection *selection.Service
	Bus       eventbus.EventBus
	Logger    *log.Logger
}

// NewCoordinator creates a coordinator. Options are the recognizer defaults
// before modifier keys are applied.
func NewCoordinator(deps Deps, opts Options) *Coordinator {
	if deps.Bus == nil {
		deps.Bus = eventbus.NullBus{}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Coordinator{
		store:         deps.Store,
		keys:          deps.Keys,
		lock:          deps.Lock,
		tip:           deps.Tooltip,
		selection:     deps.Selection,
		bus:           deps.Bus,
		logger:        deps.Logger,
		base:          opts,
		shiftThrottle: DefaultShiftThrottleRotate,
		sessions:      make(map[frames.Handle]*session),
	}
}

// SetRecognizer sets the recognizer notified after group clicks
func (c *Coordinator) SetRecognizer(r Recognizer) {
	c.recognizer = r
}

// SetRenderFunction sets the callback that applies styles after each commit
func (c *Coordinator) SetRenderFunction(fn RenderFunc) {
	c.render = fn
}

// SetShiftThrottle sets the rotation increment used while shift is held
func (c *Coordinator) SetShiftThrottle(deg float64) {
	c.shiftThrottle = deg
}

// SetGuidelines replaces the snapping guidelines handed to the recognizer
func (c *Coordinator) SetGuidelines(vertical, horizontal []float64, elements []domain.Rect) {
	c.base.VerticalGuidelines = vertical
	c.base.HorizontalGuidelines = horizontal
	c.base.ElementGuidelines = elements
}

// Options returns the recognizer configuration with modifier keys applied:
// shift keeps the aspect ratio and throttles rotation
func (c *Coordinator) Options() Options {
	opts := c.base
	if c.keys.Shift() {
		opts.KeepRatio = true
		opts.ThrottleRotate = c.shiftThrottle
	}
	return opts
}

// Active reports whether a gesture is in progress
func (c *Coordinator) Active() bool {
	return c.lock.Locked()
}

// Handle processes one gesture event
func (c *Coordinator) Handle(ev Event) {
	if ev.Kind == KindClick {
		c.click(ev)
		return
	}

	switch ev.Phase {
	case PhaseStart:
		c.lock.Acquire()
		if ev.Scope == ScopeGroup {
			for _, sub := range ev.Events {
				c.start(ev.Kind, sub)
			}
		} else {
			c.start(ev.Kind, ev)
		}
		c.bus.Publish(domain.GestureStartedEvent{
			Kind:    ev.Kind.String(),
			Group:   ev.Scope == ScopeGroup,
			Targets: len(ev.targets()),
		})

	case PhaseProgress:
		if ev.Scope == ScopeGroup {
			for _, sub := range ev.Events {
				c.progress(ev.Kind, sub)
			}
		} else {
			c.progress(ev.Kind, ev)
		}

	case PhaseEnd:
		c.end(ev)
	}
}

func (c *Coordinator) start(kind Kind, ev Event) {
	f := c.store.GetFrame(ev.Target)
	tx := f.Get(frames.PropTranslateX)
	ty := f.Get(frames.PropTranslateY)
	angle := f.Get(frames.PropRotate)

	c.sessions[ev.Target] = &session{kind: kind, startX: tx, startY: ty, startAngle: angle}

	switch kind {
	case KindDrag:
		if ev.Set != nil {
			ev.Set(tx, ty)
		}
	case KindResize:
		if ev.SetOrigin != nil {
			ev.SetOrigin(domain.UnitPercent, domain.UnitPercent)
		}
		if ev.DragStart != nil {
			ev.DragStart(tx, ty)
		}
	case KindRotate:
		if ev.Set != nil {
			ev.Set(angle)
		}
		if ev.DragStart != nil {
			ev.DragStart(tx, ty)
		}
	}

	c.logger.Debug("gesture start", "kind", kind, "slot", ev.Target.Slot(), "tx", tx, "ty", ty, "rotate", angle)
}

func (c *Coordinator) progress(kind Kind, ev Event) {
	f := c.store.GetFrame(ev.Target)
	sess := c.sessions[ev.Target]
	if sess == nil {
		// progress without an observed start: baseline from the committed frame
		sess = &session{
			kind:       kind,
			startX:     f.Get(frames.PropTranslateX),
			startY:     f.Get(frames.PropTranslateY),
			startAngle: f.Get(frames.PropRotate),
		}
		c.sessions[ev.Target] = sess
	}

	var text string
	switch kind {
	case KindDrag:
		c.store.Update(f, dragValues(ev, c.keys.Shift()))
		text = fmt.Sprintf("X: %dpx\nY: %dpx", int(math.Round(ev.Left)), int(math.Round(ev.Top)))

	case KindResize:
		values := map[frames.Property]float64{
			frames.PropWidth:  ev.Width,
			frames.PropHeight: ev.Height,
		}
		if ev.Drag != nil {
			values[frames.PropTranslateX] = ev.Drag.BeforeTranslate[0]
			values[frames.PropTranslateY] = ev.Drag.BeforeTranslate[1]
		}
		c.store.Update(f, values)
		text = fmt.Sprintf("W: %.0fpx\nH: %.0fpx", ev.Width, ev.Height)

	case KindRotate:
		deg := sess.startAngle + ev.BeforeDelta
		values := map[frames.Property]float64{frames.PropRotate: deg}
		if ev.Drag != nil {
			values[frames.PropTranslateX] = ev.Drag.BeforeTranslate[0]
			values[frames.PropTranslateY] = ev.Drag.BeforeTranslate[1]
		}
		c.store.Update(f, values)
		text = fmt.Sprintf("R: %.1f", deg)
	}

	style := f.Style()
	if c.render != nil {
		c.render(ev.Target, style)
	}
	c.bus.Publish(domain.FrameCommittedEvent{Slot: ev.Target.Slot(), Style: style})

	if !ev.IsPinch {
		c.tip.Show(ev.ClientX, ev.ClientY, text)
	}
}

// dragValues computes the translation to commit. With the constrain
// modifier only the axis that moved most in this event is updated.
func dragValues(ev Event, constrain bool) map[frames.Property]float64 {
	if !constrain {
		return map[frames.Property]float64{
			frames.PropTranslateX: ev.BeforeTranslate[0],
			frames.PropTranslateY: ev.BeforeTranslate[1],
		}
	}

	dx, dy := math.Abs(ev.Delta[0]), math.Abs(ev.Delta[1])
	switch {
	case dx != 0 && dx >= dy:
		return map[frames.Property]float64{frames.PropTranslateX: ev.BeforeTranslate[0]}
	case dy != 0:
		return map[frames.Property]float64{frames.PropTranslateY: ev.BeforeTranslate[1]}
	}
	return nil
}

func (c *Coordinator) end(ev Event) {
	matched := len(c.sessions) > 0 || c.lock.Locked()
	if !matched {
		c.logger.Debug("gesture end without start", "kind", ev.Kind)
	}

	c.lock.Release()
	c.tip.Hide()
	clear(c.sessions)

	c.bus.Publish(domain.GestureEndedEvent{
		Kind:    ev.Kind.String(),
		Group:   ev.Scope == ScopeGroup,
		Matched: matched,
	})
}

// click handles group clicks: only clicks on an element wrapper change the
// selection, anything else is ignored
func (c *Coordinator) click(ev Event) {
	if ev.Scope != ScopeGroup || !ev.InputIsWrapper {
		return
	}
	c.selection.ClickGroup(ev.InputTarget, true, c.keys.Ctrl(), func() {
		if c.recognizer != nil {
			c.recognizer.UpdateRect()
		}
	})
}
