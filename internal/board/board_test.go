package board

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artboard/internal/config"
	"artboard/internal/domain"
	"artboard/internal/frames"
	"artboard/internal/gesture"
	"artboard/internal/interaction"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b := New(nil, nil, log.New(io.Discard))
	t.Cleanup(b.Close)
	return b
}

func mountAndRegister(t *testing.T, b *Board, id domain.ElementID) frames.Handle {
	t.Helper()
	h, cmd := b.MountElement(id)
	require.NotNil(t, cmd)
	msg, ok := cmd().(RegisteredMsg)
	require.True(t, ok)
	assert.Equal(t, id, msg.ID)
	return h
}

func TestMountDefersRegistration(t *testing.T) {
	b := newTestBoard(t)

	h, cmd := b.MountElement("a")
	_, registered := b.Selection.Registry().Lookup("a")
	assert.False(t, registered, "registration must wait for the command")
	assert.True(t, b.Frames.Alive(h))

	msg := cmd().(RegisteredMsg)
	assert.True(t, msg.Changed)
	got, ok := b.Selection.Registry().Lookup("a")
	require.True(t, ok)
	assert.Equal(t, h, got)

	// a second mount of the same id reuses the handle and does not re-register
	again, cmd := b.MountElement("a")
	assert.Equal(t, h, again)
	assert.False(t, cmd().(RegisteredMsg).Changed)
	assert.Equal(t, []domain.ElementID{"a"}, b.Elements())
}

func TestUnmountReleasesFrameAndSelection(t *testing.T) {
	b := newTestBoard(t)
	a := mountAndRegister(t, b, "a")
	c := mountAndRegister(t, b, "c")
	b.Selection.SelectMultiple([]frames.Handle{a, c}, nil)

	b.UnmountElement("a")

	assert.False(t, b.Frames.Alive(a))
	assert.Equal(t, []frames.Handle{c}, b.Selection.Selected())
	assert.Equal(t, []domain.ElementID{"c"}, b.Elements())
	_, stillRegistered := b.Selection.Registry().Lookup("a")
	assert.True(t, stillRegistered)

	assert.NotPanics(t, func() { b.UnmountElement("a") })
}

func TestSelectAllSkipsUnmounted(t *testing.T) {
	b := newTestBoard(t)
	a := mountAndRegister(t, b, "a")
	mountAndRegister(t, b, "b")
	c := mountAndRegister(t, b, "c")
	b.UnmountElement("b")

	calls := 0
	selected := b.SelectAll(func() { calls++ })

	assert.Equal(t, []frames.Handle{a, c}, selected)
	assert.Equal(t, 1, calls)
}

func TestClickUsesCtrlModifier(t *testing.T) {
	b := newTestBoard(t)
	a := mountAndRegister(t, b, "a")
	c := mountAndRegister(t, b, "c")

	b.Click(a, nil)
	b.Keys.KeyDown(interaction.KeyCtrl)
	b.Click(c, nil)
	assert.Equal(t, []frames.Handle{a, c}, b.Selection.Selected())

	b.Click(a, nil)
	assert.Equal(t, []frames.Handle{c}, b.Selection.Selected())
}

func TestSelectionIsLockedDuringGesture(t *testing.T) {
	b := newTestBoard(t)
	a := mountAndRegister(t, b, "a")
	c := mountAndRegister(t, b, "c")
	b.Click(a, nil)

	b.Gestures.Handle(gesture.Event{Kind: gesture.KindDrag, Phase: gesture.PhaseStart, Target: a})
	ran := false
	b.Click(c, func() { ran = true })
	assert.False(t, ran)
	assert.Equal(t, []frames.Handle{a}, b.Selection.Selected())

	b.Gestures.Handle(gesture.Event{Kind: gesture.KindDrag, Phase: gesture.PhaseEnd, Target: a})
	b.Click(c, func() { ran = true })
	assert.True(t, ran)
	assert.Equal(t, []frames.Handle{c}, b.Selection.Selected())
}

func TestRenderCallbackReceivesCommittedStyle(t *testing.T) {
	b := newTestBoard(t)
	a := mountAndRegister(t, b, "a")

	var got string
	b.SetRenderFunction(func(h frames.Handle, style string) {
		assert.Equal(t, a, h)
		got = style
	})

	b.Gestures.Handle(gesture.Event{Kind: gesture.KindDrag, Phase: gesture.PhaseStart, Target: a})
	b.Gestures.Handle(gesture.Event{
		Kind:            gesture.KindDrag,
		Phase:           gesture.PhaseProgress,
		Target:          a,
		BeforeTranslate: [2]float64{15, -4},
		Delta:           [2]float64{15, -4},
	})

	want := "transform: translateX(15px) translateY(-4px) rotate(0deg) scaleX(1) scaleY(1);"
	assert.Equal(t, want, got)
	assert.Equal(t, want, b.RenderedStyle(a))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gestures.Rotatable = false
	cfg.Gestures.ThrottleDrag = 5
	cfg.Scroll.Threshold = 3

	opts := OptionsFromConfig(cfg)
	assert.True(t, opts.Draggable)
	assert.False(t, opts.Rotatable)
	assert.Equal(t, 5.0, opts.ThrottleDrag)
	assert.Equal(t, 3.0, opts.ScrollThreshold)
	assert.True(t, opts.Snappable)
}

func TestShiftThrottleComesFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gestures.ShiftThrottle = 45
	b := New(cfg, nil, log.New(io.Discard))
	defer b.Close()

	b.Keys.KeyDown(interaction.KeyShift)
	opts := b.Gestures.Options()
	assert.True(t, opts.KeepRatio)
	assert.Equal(t, 45.0, opts.ThrottleRotate)

	b.Blur()
	assert.Zero(t, b.Gestures.Options().ThrottleRotate)
}

func TestCloseResetsInteractionState(t *testing.T) {
	b := New(nil, nil, log.New(io.Discard))
	b.Keys.KeyDown(interaction.KeyShift)
	b.Lock.Acquire()

	b.Close()

	assert.False(t, b.Keys.Shift())
	assert.False(t, b.Lock.Locked())
}
