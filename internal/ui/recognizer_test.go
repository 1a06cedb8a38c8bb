package ui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artboard/internal/board"
	"artboard/internal/config"
	"artboard/internal/domain"
	"artboard/internal/frames"
	"artboard/internal/gesture"
	"artboard/internal/interaction"
)

type recognizerFixture struct {
	board  *board.Board
	layout *Layout
	rec    *Recognizer
	els    []*Element
}

func newRecognizerFixture(t *testing.T, mutate func(*config.Config)) *recognizerFixture {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	logger := log.New(io.Discard)
	b := board.New(cfg, nil, logger)
	t.Cleanup(b.Close)

	l := NewLayout(b.Frames, 1)
	for i, e := range GridElements(2, 2, 150) {
		e.ID = domain.ElementID(e.Label)
		h, cmd := b.MountElement(e.ID)
		require.NotNil(t, cmd, "element %d", i)
		cmd()
		e.Handle = h
		l.Add(e)
	}
	return &recognizerFixture{board: b, layout: l, rec: NewRecognizer(b, l, logger), els: l.Elements()}
}

func (fx *recognizerFixture) frame(i int) *frames.Frame {
	return fx.board.Frames.GetFrame(fx.els[i].Handle)
}

func TestPressSelectsAndDragsTarget(t *testing.T) {
	fx := newRecognizerFixture(t, func(cfg *config.Config) { cfg.Snap.Snappable = false })

	fx.rec.Press(Pointer{X: 70, Y: 160})
	assert.True(t, fx.rec.Active())
	fx.rec.Move(Pointer{X: 95, Y: 170})
	fx.rec.Release(Pointer{X: 95, Y: 170})

	assert.False(t, fx.rec.Active())
	assert.Equal(t, "translateX(25px) translateY(10px) rotate(0deg) scaleX(1) scaleY(1)", fx.frame(0).Transform())
	assert.Equal(t, []frames.Handle{fx.els[0].Handle}, fx.board.Selection.Selected())
}

func TestDragSnapsToElementEdge(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Gestures.SetGuidelines(nil, nil, []domain.Rect{fx.layout.Rect(fx.els[0]), fx.layout.Rect(fx.els[2])})

	// right edge lands at 204, within a cell of test__3's left edge at 210
	fx.rec.Press(Pointer{X: 70, Y: 160})
	fx.rec.Move(Pointer{X: 114, Y: 160})
	fx.rec.Release(Pointer{X: 114, Y: 160})

	assert.Equal(t, 50.0, fx.frame(0).Get(frames.PropTranslateX))
}

func TestDragSnapsToRulerGuideline(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Gestures.SetGuidelines([]float64{100}, nil, nil)

	fx.rec.Press(Pointer{X: 70, Y: 160})
	fx.rec.Move(Pointer{X: 107, Y: 160})
	fx.rec.Release(Pointer{X: 107, Y: 160})

	assert.Equal(t, 40.0, fx.frame(0).Get(frames.PropTranslateX))
}

func TestDragThrottle(t *testing.T) {
	fx := newRecognizerFixture(t, func(cfg *config.Config) {
		cfg.Snap.Snappable = false
		cfg.Gestures.ThrottleDrag = 20
	})

	fx.rec.Press(Pointer{X: 70, Y: 160})
	fx.rec.Move(Pointer{X: 103, Y: 165})
	fx.rec.Release(Pointer{X: 103, Y: 165})

	assert.Equal(t, 40.0, fx.frame(0).Get(frames.PropTranslateX))
	assert.Equal(t, 0.0, fx.frame(0).Get(frames.PropTranslateY))
}

func TestGroupRotateOrbitsMembers(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Selection.SelectMultiple([]frames.Handle{fx.els[0].Handle, fx.els[2].Handle}, fx.rec.UpdateRect)

	fx.rec.Rotate(90)

	// the pair turns a quarter around the group center at 185,180
	for _, i := range []int{0, 2} {
		assert.InDelta(t, 90, fx.frame(i).Get(frames.PropRotate), 1e-6)
	}
	assert.InDelta(t, 75, fx.frame(0).Get(frames.PropTranslateX), 1e-6)
	assert.InDelta(t, -75, fx.frame(0).Get(frames.PropTranslateY), 1e-6)
	assert.InDelta(t, -75, fx.frame(2).Get(frames.PropTranslateX), 1e-6)
	assert.InDelta(t, 75, fx.frame(2).Get(frames.PropTranslateY), 1e-6)
	assert.False(t, fx.board.Lock.Locked())
}

func TestConstrainedDragComparesSnappedOffsets(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Gestures.SetGuidelines([]float64{170}, nil, nil)
	fx.board.Keys.Toggle(interaction.KeyShift)

	fx.rec.Press(Pointer{X: 70, Y: 160})
	// the right edge snaps from 165 to 170
	fx.rec.Move(Pointer{X: 75, Y: 160})
	assert.Equal(t, 10.0, fx.frame(0).Get(frames.PropTranslateX))

	// x stays snapped at 10, so y is the only axis that moved
	fx.rec.Move(Pointer{X: 78, Y: 164})
	fx.rec.Release(Pointer{X: 78, Y: 164})

	assert.Equal(t, 10.0, fx.frame(0).Get(frames.PropTranslateX))
	assert.Equal(t, 4.0, fx.frame(0).Get(frames.PropTranslateY))
}

func TestRotatePastHalfTurnKeepsTurning(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Click(fx.els[0].Handle, fx.rec.UpdateRect)

	// test__1 is centered on 110,180
	fx.rec.begin(gesture.KindRotate, fx.board.Selection.Selected(), Pointer{X: 210, Y: 180})
	fx.rec.Move(Pointer{X: 110, Y: 280})
	fx.rec.Move(Pointer{X: 10, Y: 180})
	fx.rec.Move(Pointer{X: 110, Y: 80})
	assert.InDelta(t, 270, fx.frame(0).Get(frames.PropRotate), 1e-6)
	assert.Equal(t, "R: 270.0", fx.board.Tooltip.Text())

	fx.rec.Release(Pointer{X: 110, Y: 80})
	assert.False(t, fx.board.Lock.Locked())
}

func TestPressEndsGestureWithoutRelease(t *testing.T) {
	fx := newRecognizerFixture(t, func(cfg *config.Config) { cfg.Snap.Snappable = false })

	fx.rec.Press(Pointer{X: 70, Y: 160})
	fx.rec.Move(Pointer{X: 80, Y: 160})
	require.True(t, fx.board.Lock.Locked())

	// the release never arrived; a press on empty space starts a marquee
	fx.rec.Press(Pointer{X: 10, Y: 10})
	assert.False(t, fx.board.Lock.Locked())
	assert.False(t, fx.board.Tooltip.Visible())
	assert.Empty(t, fx.board.Selection.Selected())
	_, ok := fx.rec.Marquee()
	assert.True(t, ok)
	assert.Equal(t, 10.0, fx.frame(0).Get(frames.PropTranslateX))
}

func TestResizeKeepsRatioWithShift(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Click(fx.els[0].Handle, fx.rec.UpdateRect)
	fx.board.Keys.Toggle(interaction.KeyShift)

	fx.rec.Resize(50, 0)

	f := fx.frame(0)
	require.NotNil(t, f.Width)
	assert.Equal(t, 150.0, f.Width.Value)
	assert.Equal(t, 90.0, f.Height.Value)
}

func TestResizeHandlePress(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Click(fx.els[0].Handle, fx.rec.UpdateRect)
	hp := fx.layout.Handles()
	require.True(t, hp.Visible)

	p := Pointer{X: fx.layout.PxX(hp.ResizeCol), Y: fx.layout.PxY(hp.ResizeRow)}
	fx.rec.Press(p)
	p.X, p.Y = p.X+20, p.Y+20
	fx.rec.Move(p)
	fx.rec.Release(p)

	f := fx.frame(0)
	require.NotNil(t, f.Width)
	assert.Equal(t, 120.0, f.Width.Value)
	assert.Equal(t, 80.0, f.Height.Value)
	assert.Equal(t, "W: 120px\nH: 80px", fx.board.Tooltip.Text())
}

func TestMarqueeWithCtrlKeepsSelectionUntilRelease(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Click(fx.els[3].Handle, nil)
	fx.board.Keys.Toggle(interaction.KeyCtrl)

	fx.rec.Press(Pointer{X: 10, Y: 10})
	rect, ok := fx.rec.Marquee()
	require.True(t, ok)
	assert.Zero(t, rect.Width)
	assert.Len(t, fx.board.Selection.Selected(), 1)

	fx.rec.Move(Pointer{X: 5, Y: 5})
	fx.rec.Release(Pointer{X: 100, Y: 400})

	assert.Equal(t, []frames.Handle{fx.els[0].Handle, fx.els[1].Handle}, fx.board.Selection.Selected())
	_, ok = fx.rec.Marquee()
	assert.False(t, ok)
}

func TestCancelSuppressesGroupClick(t *testing.T) {
	fx := newRecognizerFixture(t, nil)
	fx.board.Selection.SelectMultiple([]frames.Handle{fx.els[0].Handle, fx.els[1].Handle}, nil)

	fx.rec.Press(Pointer{X: 150, Y: 160})
	require.True(t, fx.board.Lock.Locked())
	fx.rec.Cancel()

	assert.False(t, fx.board.Lock.Locked())
	assert.Equal(t, 2, fx.board.Selection.Count())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, -170.0, normalizeDegrees(190))
	assert.Equal(t, 180.0, normalizeDegrees(-180))
	assert.Equal(t, 30.0, throttle(44, 30))
	assert.Equal(t, 7.5, throttle(7.5, 0))
	assert.Equal(t, -3.0, nearest([]float64{103, 150}, []float64{100, 158}, 10))
	assert.Zero(t, nearest([]float64{50}, []float64{100}, 10))
	assert.Equal(t, domain.Rect{X: 1, Y: 2, Width: 4, Height: 6}, spanRect(Pointer{X: 5, Y: 2}, Pointer{X: 1, Y: 8}))
}
