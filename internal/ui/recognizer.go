package ui

import (
	"math"

	"github.com/charmbracelet/log"

	"artboard/internal/board"
	"artboard/internal/domain"
	"artboard/internal/frames"
	"artboard/internal/gesture"
)

// Pointer is a pointer position in board px plus the screen px the tooltip
// is placed from
type Pointer struct {
	X, Y             float64
	ClientX, ClientY float64
}

type baseline struct {
	tx, ty  float64
	angle   float64
	dragX   float64 // resize/rotate translation seed
	dragY   float64
	origin  []string
	w, h    float64
	cx, cy  float64 // element center, px
	hasSize bool
}

type active struct {
	kind    gesture.Kind
	scope   gesture.Scope
	targets []frames.Handle
	base    map[frames.Handle]*baseline
	rect    domain.Rect // target bounds at start
	rects   []domain.Rect

	start, last Pointer
	moved       bool

	// last committed drag offset, snapping included
	dx, dy float64

	// pivot, last pointer angle (radians) and the unwrapped turn since
	// start (degrees) for rotation
	pivotX, pivotY float64
	lastAngle      float64
	turn           float64

	// group click candidate
	clickTarget  frames.Handle
	clickWrapper bool
}

type marquee struct {
	start, last Pointer
}

// Recognizer turns pointer input into gesture events for the board
type Recognizer struct {
	board  *board.Board
	layout *Layout
	logger *log.Logger

	active  *active
	marquee *marquee
}

// NewRecognizer creates a recognizer and registers it with the coordinator
func NewRecognizer(b *board.Board, layout *Layout, logger *log.Logger) *Recognizer {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recognizer{board: b, layout: layout, logger: logger}
	b.Gestures.SetRecognizer(r)
	return r
}

// UpdateRect re-reads the selection bounds and moves the handles
func (r *Recognizer) UpdateRect() {
	rect, ok := r.layout.Bounds(r.board.Selection.Selected())
	r.layout.PlaceHandles(rect, ok, r.board.Gestures.Options().RotationAtCorner)
}

// Active reports whether a gesture or marquee is in progress
func (r *Recognizer) Active() bool {
	return r.active != nil || r.marquee != nil
}

// Marquee returns the marquee rectangle in px while one is being drawn
func (r *Recognizer) Marquee() (domain.Rect, bool) {
	if r.marquee == nil {
		return domain.Rect{}, false
	}
	return spanRect(r.marquee.start, r.marquee.last), true
}

// Press starts a gesture, a selection change or a marquee
func (r *Recognizer) Press(p Pointer) {
	// a release we never saw must not leave the lock held
	if r.Active() {
		r.Cancel()
	}
	opts := r.board.Gestures.Options()
	hit := r.layout.HitTest(r.layout.Col(p.X), r.layout.Row(p.Y), opts.Rotatable)
	selected := r.board.Selection.Selected()

	switch hit.Part {
	case PartResize:
		if opts.Resizable && len(selected) > 0 {
			r.begin(gesture.KindResize, selected, p)
		}
		return

	case PartRotate:
		if opts.Rotatable && len(selected) > 0 {
			r.begin(gesture.KindRotate, selected, p)
		}
		return

	case PartBody, PartLabel:
		h := hit.Element.Handle
		if len(selected) > 1 && r.board.Selection.IsSelected(h) {
			// group member: drag the group, or click it if the pointer
			// never moves
			if opts.Draggable {
				r.begin(gesture.KindDrag, selected, p)
				r.active.clickTarget = h
				r.active.clickWrapper = hit.Part == PartBody
			} else {
				r.board.Gestures.Handle(gesture.Event{
					Kind:           gesture.KindClick,
					Scope:          gesture.ScopeGroup,
					InputTarget:    h,
					InputIsWrapper: hit.Part == PartBody,
				})
			}
			return
		}

		next := r.board.Click(h, r.UpdateRect)
		if opts.Draggable && r.board.Selection.IsSelected(h) {
			r.begin(gesture.KindDrag, next, p)
		}
		return
	}

	if !r.board.Keys.Ctrl() {
		r.board.Selection.Clear(r.UpdateRect)
	}
	r.marquee = &marquee{start: p, last: p}
}

// Move continues the current gesture or marquee
func (r *Recognizer) Move(p Pointer) {
	if r.marquee != nil {
		r.marquee.last = p
		return
	}
	a := r.active
	if a == nil {
		return
	}
	if p == a.last {
		return
	}
	a.moved = true
	opts := r.board.Gestures.Options()

	switch a.kind {
	case gesture.KindDrag:
		r.board.Gestures.Handle(r.dragEvent(a, p, opts))
	case gesture.KindResize:
		r.board.Gestures.Handle(r.resizeEvent(a, p, opts))
	case gesture.KindRotate:
		r.board.Gestures.Handle(r.rotateEvent(a, p, opts))
	}
	a.last = p
	r.UpdateRect()
}

// Release ends the current gesture or marquee
func (r *Recognizer) Release(p Pointer) {
	if m := r.marquee; m != nil {
		m.last = p
		r.marquee = nil
		var targets []frames.Handle
		for _, e := range r.layout.Intersecting(spanRect(m.start, m.last)) {
			targets = append(targets, e.Handle)
		}
		if len(targets) > 0 {
			r.board.Selection.SelectMultiple(targets, r.UpdateRect)
		}
		return
	}

	a := r.active
	if a == nil {
		return
	}
	r.active = nil

	r.board.Gestures.Handle(gesture.Event{
		Kind:    a.kind,
		Phase:   gesture.PhaseEnd,
		Scope:   a.scope,
		Target:  first(a.targets),
		Targets: a.targets,
		IsDrag:  a.moved,
	})

	if !a.moved && !a.clickTarget.IsNil() {
		r.board.Gestures.Handle(gesture.Event{
			Kind:           gesture.KindClick,
			Scope:          gesture.ScopeGroup,
			Targets:        a.targets,
			InputTarget:    a.clickTarget,
			InputIsWrapper: a.clickWrapper,
		})
	}
	r.UpdateRect()
}

// Cancel ends any gesture without a click, e.g. when focus is lost
func (r *Recognizer) Cancel() {
	r.marquee = nil
	if a := r.active; a != nil {
		a.clickTarget = frames.Nil
		r.Release(a.last)
	}
}

// Nudge moves the selection by dx, dy px as one drag gesture
func (r *Recognizer) Nudge(dx, dy float64) {
	r.synthetic(gesture.KindDrag, func(p Pointer) Pointer {
		p.X += dx
		p.Y += dy
		return p
	})
}

// Resize grows the selection by dw, dh px as one resize gesture
func (r *Recognizer) Resize(dw, dh float64) {
	r.synthetic(gesture.KindResize, func(p Pointer) Pointer {
		p.X += dw
		p.Y += dh
		return p
	})
}

// Rotate turns the selection by deg degrees as one rotate gesture
func (r *Recognizer) Rotate(deg float64) {
	r.synthetic(gesture.KindRotate, func(p Pointer) Pointer {
		a := r.active
		rad := deg * math.Pi / 180
		dx, dy := p.X-a.pivotX, p.Y-a.pivotY
		p.X = a.pivotX + dx*math.Cos(rad) - dy*math.Sin(rad)
		p.Y = a.pivotY + dx*math.Sin(rad) + dy*math.Cos(rad)
		return p
	})
}

func (r *Recognizer) synthetic(kind gesture.Kind, to func(Pointer) Pointer) {
	selected := r.board.Selection.Selected()
	if r.active != nil || len(selected) == 0 {
		return
	}
	rect, _ := r.layout.Bounds(selected)
	start := Pointer{X: rect.X + rect.Width, Y: rect.Y}
	if kind == gesture.KindResize {
		start.Y = rect.Y + rect.Height
	}
	start.ClientX = start.X * r.layout.Zoom()
	start.ClientY = start.Y * r.layout.Zoom()

	r.begin(kind, selected, start)
	end := to(start)
	end.ClientX = end.X * r.layout.Zoom()
	end.ClientY = end.Y * r.layout.Zoom()
	r.Move(end)
	r.Release(end)
}

// begin sends the start event and records the baselines the coordinator
// seeds through the event's setters
func (r *Recognizer) begin(kind gesture.Kind, targets []frames.Handle, p Pointer) {
	if r.active != nil {
		r.Cancel()
	}
	targets = append([]frames.Handle(nil), targets...)
	a := &active{
		kind:    kind,
		targets: targets,
		base:    make(map[frames.Handle]*baseline, len(targets)),
		start:   p,
		last:    p,
	}
	if len(targets) > 1 {
		a.scope = gesture.ScopeGroup
	}
	a.rect, _ = r.layout.Bounds(targets)
	a.pivotX, a.pivotY = a.rect.Center()
	a.lastAngle = math.Atan2(p.Y-a.pivotY, p.X-a.pivotX)

	subs := make([]gesture.Event, 0, len(targets))
	for _, h := range targets {
		b := &baseline{}
		if e := r.layout.Find(h); e != nil {
			er := r.layout.Rect(e)
			a.rects = append(a.rects, er)
			b.w, b.h = er.Width, er.Height
			b.cx, b.cy = er.Center()
			b.hasSize = true
		}
		a.base[h] = b
		subs = append(subs, r.startEvent(kind, h, b))
	}

	ev := gesture.Event{Kind: kind, Phase: gesture.PhaseStart, Scope: a.scope, Targets: targets}
	if a.scope == gesture.ScopeGroup {
		ev.Events = subs
	} else if len(subs) == 1 {
		ev = subs[0]
		ev.Phase = gesture.PhaseStart
		ev.Targets = targets
	}

	r.active = a
	r.board.Gestures.Handle(ev)
	r.logger.Debug("recognizer begin", "kind", kind, "targets", len(targets))
}

func (r *Recognizer) startEvent(kind gesture.Kind, h frames.Handle, b *baseline) gesture.Event {
	ev := gesture.Event{Kind: kind, Phase: gesture.PhaseStart, Target: h}
	switch kind {
	case gesture.KindDrag:
		ev.Set = func(v ...float64) {
			if len(v) >= 2 {
				b.tx, b.ty = v[0], v[1]
			}
		}
	case gesture.KindResize:
		ev.SetOrigin = func(o ...string) { b.origin = o }
		ev.DragStart = func(v ...float64) {
			if len(v) >= 2 {
				b.dragX, b.dragY = v[0], v[1]
			}
		}
	case gesture.KindRotate:
		ev.Set = func(v ...float64) {
			if len(v) >= 1 {
				b.angle = v[0]
			}
		}
		ev.DragStart = func(v ...float64) {
			if len(v) >= 2 {
				b.dragX, b.dragY = v[0], v[1]
			}
		}
	}
	return ev
}

func (r *Recognizer) dragEvent(a *active, p Pointer, opts gesture.Options) gesture.Event {
	dx := throttle(p.X-a.start.X, opts.ThrottleDrag)
	dy := throttle(p.Y-a.start.Y, opts.ThrottleDrag)
	if opts.Snappable {
		dx, dy = r.snap(a, dx, dy, opts)
	}
	prevDX, prevDY := a.dx, a.dy
	a.dx, a.dy = dx, dy

	subs := make([]gesture.Event, 0, len(a.targets))
	for _, h := range a.targets {
		b := a.base[h]
		subs = append(subs, gesture.Event{
			Target:          h,
			BeforeTranslate: [2]float64{b.tx + dx, b.ty + dy},
			Delta:           [2]float64{dx - prevDX, dy - prevDY},
			Left:            a.rect.X + dx,
			Top:             a.rect.Y + dy,
			ClientX:         p.ClientX,
			ClientY:         p.ClientY,
		})
	}
	return r.progress(a, subs)
}

func (r *Recognizer) resizeEvent(a *active, p Pointer, opts gesture.Options) gesture.Event {
	dw := throttle(p.X-a.start.X, opts.ThrottleResize)
	dh := throttle(p.Y-a.start.Y, opts.ThrottleResize)

	minW, minH := CellWidth/r.layout.Zoom(), CellHeight/r.layout.Zoom()
	subs := make([]gesture.Event, 0, len(a.targets))
	for _, h := range a.targets {
		b := a.base[h]
		w := math.Max(minW, b.w+dw)
		ht := math.Max(minH, b.h+dh)
		if opts.KeepRatio && b.w > 0 {
			ht = math.Max(minH, w*b.h/b.w)
		}
		subs = append(subs, gesture.Event{
			Target:  h,
			Width:   w,
			Height:  ht,
			Drag:    &gesture.DragInfo{BeforeTranslate: [2]float64{b.dragX, b.dragY}},
			ClientX: p.ClientX,
			ClientY: p.ClientY,
		})
	}
	return r.progress(a, subs)
}

func (r *Recognizer) rotateEvent(a *active, p Pointer, opts gesture.Options) gesture.Event {
	angle := math.Atan2(p.Y-a.pivotY, p.X-a.pivotX)
	a.turn += normalizeDegrees((angle - a.lastAngle) * 180 / math.Pi)
	a.lastAngle = angle
	deg := throttle(a.turn, opts.ThrottleRotate)

	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	subs := make([]gesture.Event, 0, len(a.targets))
	for _, h := range a.targets {
		b := a.base[h]
		ev := gesture.Event{
			Target:      h,
			BeforeDelta: deg,
			ClientX:     p.ClientX,
			ClientY:     p.ClientY,
		}
		if a.scope == gesture.ScopeGroup {
			// members orbit the group center
			ox, oy := b.cx-a.pivotX, b.cy-a.pivotY
			nx := a.pivotX + ox*cos - oy*sin
			ny := a.pivotY + ox*sin + oy*cos
			ev.Drag = &gesture.DragInfo{BeforeTranslate: [2]float64{b.dragX + nx - b.cx, b.dragY + ny - b.cy}}
		}
		subs = append(subs, ev)
	}
	return r.progress(a, subs)
}

func (r *Recognizer) progress(a *active, subs []gesture.Event) gesture.Event {
	if a.scope == gesture.ScopeGroup {
		return gesture.Event{
			Kind:    a.kind,
			Phase:   gesture.PhaseProgress,
			Scope:   gesture.ScopeGroup,
			Targets: a.targets,
			Events:  subs,
		}
	}
	ev := subs[0]
	ev.Kind = a.kind
	ev.Phase = gesture.PhaseProgress
	ev.IsDrag = true
	return ev
}

// snap pulls the moving rectangle's edges or center onto a guideline when
// within one cell
func (r *Recognizer) snap(a *active, dx, dy float64, opts gesture.Options) (float64, float64) {
	rect := a.rect
	vertical := append([]float64(nil), opts.VerticalGuidelines...)
	horizontal := append([]float64(nil), opts.HorizontalGuidelines...)
	for _, g := range opts.ElementGuidelines {
		if containsRect(a.rects, g) {
			continue
		}
		vertical = append(vertical, g.X, g.X+g.Width)
		horizontal = append(horizontal, g.Y, g.Y+g.Height)
		if opts.SnapCenter {
			cx, cy := g.Center()
			vertical = append(vertical, cx)
			horizontal = append(horizontal, cy)
		}
	}

	xs := []float64{rect.X + dx, rect.X + rect.Width + dx}
	ys := []float64{rect.Y + dy, rect.Y + rect.Height + dy}
	if opts.SnapCenter {
		cx, cy := rect.Center()
		xs = append(xs, cx+dx)
		ys = append(ys, cy+dy)
	}

	dx += nearest(xs, vertical, CellWidth/r.layout.Zoom())
	dy += nearest(ys, horizontal, CellHeight/r.layout.Zoom())
	return dx, dy
}

// nearest returns the smallest correction moving any edge onto a line
// within tolerance, or 0
func nearest(edges, lines []float64, tolerance float64) float64 {
	best, found := 0.0, false
	for _, e := range edges {
		for _, l := range lines {
			d := l - e
			if math.Abs(d) <= tolerance && (!found || math.Abs(d) < math.Abs(best)) {
				best, found = d, true
			}
		}
	}
	return best
}

func throttle(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func spanRect(a, b Pointer) domain.Rect {
	return domain.Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

func containsRect(rects []domain.Rect, r domain.Rect) bool {
	for _, other := range rects {
		if other == r {
			return true
		}
	}
	return false
}

func first(hs []frames.Handle) frames.Handle {
	if len(hs) == 0 {
		return frames.Nil
	}
	return hs[0]
}
