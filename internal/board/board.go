// Package board wires the frame store, modifier keys, interaction lock,
// selection, tooltip and gesture coordinator into one artboard.
package board

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"artboard/internal/config"
	"artboard/internal/domain"
	"artboard/internal/eventbus"
	"artboard/internal/frames"
	"artboard/internal/gesture"
	"artboard/internal/interaction"
	"artboard/internal/selection"
	"artboard/internal/tooltip"
)

// RegisteredMsg is delivered by the command MountElement returns, once the
// element has been added to the selectable registry
type RegisteredMsg struct {
	ID      domain.ElementID
	Handle  frames.Handle
	Changed bool
}

// Board manages all artboard services and their interactions
type Board struct {
	// Services
	Frames    *frames.Store
	Keys      *interaction.Keys
	Lock      *interaction.Lock
	Tooltip   *tooltip.Tooltip
	Selection *selection.Service
	Gestures  *gesture.Coordinator

	// Dependencies
	bus    eventbus.EventBus
	logger *log.Logger
	cfg    *config.Config

	mu       sync.Mutex
	order    []domain.ElementID
	mounted  map[domain.ElementID]frames.Handle
	rendered map[frames.Handle]string
	onRender gesture.RenderFunc
}

// New creates a board from configuration. A nil config uses the defaults.
func New(cfg *config.Config, bus eventbus.EventBus, logger *log.Logger) *Board {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = log.Default()
	}

	b := &Board{
		Frames:    frames.NewStore(),
		Keys:      interaction.NewKeys(bus),
		Lock:      interaction.NewLock(bus),
		Selection: selection.NewService(bus),
		bus:       bus,
		logger:    logger,
		cfg:       cfg,
		mounted:   make(map[domain.ElementID]frames.Handle),
		rendered:  make(map[frames.Handle]string),
	}
	b.Tooltip = tooltip.New(cfg.Board.Zoom, b.Selection.Count)
	b.Gestures = gesture.NewCoordinator(gesture.Deps{
		Store:     b.Frames,
		Keys:      b.Keys,
		Lock:      b.Lock,
		Tooltip:   b.Tooltip,
		Selection: b.Selection,
		Bus:       bus,
		Logger:    logger,
	}, OptionsFromConfig(cfg))

	b.wireServices()
	return b
}

// wireServices connects services with their dependencies
func (b *Board) wireServices() {
	// Selection input is suppressed while a gesture holds the lock
	b.Selection.SetLockFunction(b.Lock.Locked)

	b.Gestures.SetShiftThrottle(b.cfg.Gestures.ShiftThrottle)
	b.Gestures.SetRenderFunction(b.render)
}

// OptionsFromConfig builds recognizer options from configuration
func OptionsFromConfig(cfg *config.Config) gesture.Options {
	return gesture.Options{
		Draggable:        cfg.Gestures.Draggable,
		Resizable:        cfg.Gestures.Resizable,
		Rotatable:        cfg.Gestures.Rotatable,
		Snappable:        cfg.Snap.Snappable,
		SnapCenter:       cfg.Snap.SnapCenter,
		ThrottleDrag:     cfg.Gestures.ThrottleDrag,
		ThrottleResize:   cfg.Gestures.ThrottleResize,
		ThrottleRotate:   cfg.Gestures.ThrottleRotate,
		RotationAtCorner: cfg.Gestures.RotationAtCorner,
		Scrollable:       cfg.Scroll.Scrollable,
		ScrollThreshold:  cfg.Scroll.Threshold,
	}
}

// Config returns the configuration the board was built from
func (b *Board) Config() *config.Config {
	return b.cfg
}

// SetZoom changes the board zoom used for tooltip placement
func (b *Board) SetZoom(zoom float64) {
	b.cfg.Board.Zoom = zoom
	b.Tooltip.SetZoom(zoom)
}

// SetRenderFunction sets a callback run after every committed frame
func (b *Board) SetRenderFunction(fn gesture.RenderFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onRender = fn
}

func (b *Board) render(h frames.Handle, style string) {
	b.mu.Lock()
	b.rendered[h] = style
	fn := b.onRender
	b.mu.Unlock()

	if fn != nil {
		fn(h, style)
	}
}

// RenderedStyle returns the last style applied to an element's visual
func (b *Board) RenderedStyle(h frames.Handle) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if style, ok := b.rendered[h]; ok {
		return style
	}
	return b.Frames.Style(h)
}

// MountElement gives an element its frame and returns a command that adds it
// to the selectable registry on the next turn of the event loop
func (b *Board) MountElement(id domain.ElementID) (frames.Handle, tea.Cmd) {
	b.mu.Lock()
	h, ok := b.mounted[id]
	if !ok {
		h = b.Frames.Mount()
		b.mounted[id] = h
		b.order = append(b.order, id)
	}
	b.mu.Unlock()

	if !ok {
		b.bus.Publish(domain.ElementMountedEvent{ID: id})
		b.logger.Debug("element mounted", "id", id, "slot", h.Slot())
	}

	return h, func() tea.Msg {
		changed := b.Selection.Registry().Register(id, h)
		return RegisteredMsg{ID: id, Handle: h, Changed: changed}
	}
}

// UnmountElement releases an element's frame and drops it from the selection.
// The registry entry is left in place.
func (b *Board) UnmountElement(id domain.ElementID) {
	b.mu.Lock()
	h, ok := b.mounted[id]
	if ok {
		delete(b.mounted, id)
		delete(b.rendered, h)
		for i, other := range b.order {
			if other == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	b.Selection.Remove(h)
	b.Selection.Registry().Unregister(id)
	b.Frames.Release(h)
	b.bus.Publish(domain.ElementUnmountedEvent{ID: id})
}

// Element returns the handle of a mounted element
func (b *Board) Element(id domain.ElementID) (frames.Handle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.mounted[id]
	return h, ok
}

// Elements returns mounted element IDs in mount order
func (b *Board) Elements() []domain.ElementID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.ElementID(nil), b.order...)
}

// Click selects a single element, toggling it when ctrl is held
func (b *Board) Click(h frames.Handle, then func()) []frames.Handle {
	return b.Selection.SelectSingle(h, b.Keys.Ctrl(), then)
}

// SelectAll selects every registered element that is still mounted
func (b *Board) SelectAll(then func()) []frames.Handle {
	var targets []frames.Handle
	for _, id := range b.Elements() {
		if h, ok := b.Selection.Registry().Lookup(id); ok && b.Frames.Alive(h) {
			targets = append(targets, h)
		}
	}
	b.logger.Debug("select all", "count", len(targets))
	return b.Selection.SelectMultiple(targets, then)
}

// Blur clears modifier state when the board loses focus
func (b *Board) Blur() {
	b.Keys.Blur()
}

// Close tears the board down
func (b *Board) Close() {
	b.Keys.Reset()
	b.Lock.Release()
	b.Tooltip.Hide()
}
