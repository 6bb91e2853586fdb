package pathview

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAnimator struct {
	frames    int
	remaining int
}

func (c *countingAnimator) Animate(time.Time) bool {
	c.frames++
	c.remaining--
	return c.remaining > 0
}

func TestApplication_AnimateCommand(t *testing.T) {
	app := NewApplication()
	anim := &countingAnimator{remaining: 2}

	assert.True(t, app.executeCommand(AnimateCommand{Target: anim}))
	assert.Equal(t, 1, anim.frames)
	require.NotNil(t, app.frames())

	assert.True(t, app.animate(time.Now()))
	assert.Equal(t, 2, anim.frames)
	assert.Nil(t, app.frames())
	assert.False(t, app.animate(time.Now()))
}

func TestApplication_AnimatesPathView(t *testing.T) {
	app := NewApplication()
	p, _, _ := newTestView(t, 5)
	p.SetHighlightMoveDuration(50 * time.Millisecond)

	cmd := p.InputHandler(runeKey("l"))
	assert.True(t, app.executeCommand(cmd))

	now := time.Now()
	for i := 0; app.animate(now); i++ {
		require.Less(t, i, 100)
		now = now.Add(FrameInterval)
	}
	assert.Nil(t, app.frames())
	assert.InDelta(t, 4, p.GetOffset(), 1e-9)
	assert.Equal(t, 1, p.GetCurrentIndex())
}

func TestApplication_ExecuteCommand(t *testing.T) {
	app := NewApplication()
	box := NewBox()

	assert.False(t, app.executeCommand(nil))
	assert.True(t, app.executeCommand(RedrawCommand{}))
	assert.False(t, app.executeCommand(ConsumeEventCommand{}))
	assert.False(t, app.executeCommand(SetTitleCommand("title")))
	assert.False(t, app.executeCommand(AnimateCommand{}))
	assert.True(t, app.executeCommand(BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}))

	assert.True(t, app.executeCommand(SetFocusCommand{Target: box}))
	assert.Same(t, box, app.GetFocus())
	assert.True(t, box.HasFocus())
	assert.False(t, app.executeCommand(SetFocusCommand{Target: box}))
}

// mouseTarget holds the mouse while the left button is down and records the
// actions it receives.
type mouseTarget struct {
	*Box
	actions []MouseAction
	ungrabs int
	// handoff, when set, takes the mouse on the next move.
	handoff Primitive
}

func newMouseTarget() *mouseTarget {
	return &mouseTarget{Box: NewBox()}
}

func (m *mouseTarget) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	m.actions = append(m.actions, action)
	switch {
	case action == MouseMove && m.handoff != nil:
		return m.handoff, nil
	case event.Buttons()&tcell.ButtonPrimary != 0:
		return m, RedrawCommand{}
	}
	return nil, nil
}

func (m *mouseTarget) MouseUngrab() {
	m.ungrabs++
}

func mouseAt(x, y int, buttons tcell.ButtonMask, when time.Time) *tcell.EventMouse {
	event := tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
	event.SetEventTime(when)
	return event
}

func TestApplication_MouseActions(t *testing.T) {
	app := NewApplication()
	target := newMouseTarget()
	app.SetRoot(target)
	now := time.Now()

	assert.True(t, app.handleMouse(mouseAt(3, 2, tcell.ButtonPrimary, now)))
	assert.Same(t, target, app.mouse.holder)
	assert.False(t, app.handleMouse(mouseAt(3, 2, tcell.ButtonNone, now)))
	assert.Nil(t, app.mouse.holder)
	assert.Equal(t, []MouseAction{MouseMove, MouseLeftDown, MouseLeftUp, MouseLeftClick}, target.actions)

	target.actions = nil
	app.handleMouse(mouseAt(5, 2, tcell.ButtonPrimary, now))
	app.handleMouse(mouseAt(7, 2, tcell.ButtonPrimary, now))
	app.handleMouse(mouseAt(7, 2, tcell.ButtonNone, now))
	app.handleMouse(mouseAt(7, 2, tcell.WheelUp, now))
	assert.Equal(t, []MouseAction{
		MouseMove, MouseLeftDown,
		MouseMove,
		MouseLeftUp,
		MouseScrollUp,
	}, target.actions)

	// Letting go of the mouse is not losing it.
	assert.Zero(t, target.ungrabs)
}

func TestApplication_MouseHandoffUngrabs(t *testing.T) {
	app := NewApplication()
	first, second := newMouseTarget(), newMouseTarget()
	app.SetRoot(first)
	now := time.Now()

	app.handleMouse(mouseAt(0, 0, tcell.ButtonPrimary, now))
	require.Same(t, first, app.mouse.holder)

	first.handoff = second
	app.handleMouse(mouseAt(1, 0, tcell.ButtonPrimary, now))
	assert.Same(t, second, app.mouse.holder)
	assert.Equal(t, 1, first.ungrabs)

	app.handleMouse(mouseAt(2, 0, tcell.ButtonPrimary, now))
	assert.Equal(t, []MouseAction{MouseMove}, second.actions)
	assert.Zero(t, second.ungrabs)

	// Replacing the root cancels the gesture of the holder.
	app.SetRoot(NewBox())
	assert.Equal(t, 1, second.ungrabs)
	assert.Nil(t, app.mouse.holder)
}

func TestApplication_FlickSurvivesRelease(t *testing.T) {
	app := NewApplication()
	p, _, r := newTestView(t, 10)
	p.SetDragMargin(2)
	app.SetRoot(p)
	t0 := time.Now()

	app.handleMouse(mouseAt(10, 5, tcell.ButtonPrimary, t0))
	require.Same(t, p, app.mouse.holder)
	var when time.Time
	for i := 1; i <= 4; i++ {
		when = t0.Add(time.Duration(i) * 10 * time.Millisecond)
		app.handleMouse(mouseAt(10+10*i, 5, tcell.ButtonPrimary, when))
	}
	require.True(t, p.IsDragging())
	app.handleMouse(mouseAt(50, 5, tcell.ButtonNone, when))

	assert.Nil(t, app.mouse.holder)
	assert.True(t, p.IsFlicking())
	assert.Equal(t, 1, r.count(FlickStarted))
	require.NotNil(t, app.frames())

	now := time.Now()
	for i := 0; app.animate(now); i++ {
		require.Less(t, i, 1000)
		now = now.Add(FrameInterval)
	}
	assert.False(t, p.IsFlicking())
	assert.False(t, p.IsMoving())
	assert.Equal(t, 1, r.count(FlickEnded))
	assert.InDelta(t, math.Round(p.GetOffset()), p.GetOffset(), 1e-9)
}

func TestApplication_KeysGoToFocusedRoot(t *testing.T) {
	app := NewApplication()
	p, _, _ := newTestView(t, 5)

	assert.False(t, app.handle(runeKey("l")))
	app.SetRoot(p)
	assert.True(t, app.handle(runeKey("l")))
	assert.Equal(t, 1, p.GetCurrentIndex())

	p.Blur()
	assert.False(t, app.handle(runeKey("l")))
	assert.Equal(t, 1, p.GetCurrentIndex())
}

func TestApplication_QuitStopsAnimations(t *testing.T) {
	app := NewApplication()
	app.executeCommand(AnimateCommand{Target: &countingAnimator{remaining: 10}})
	require.NotNil(t, app.frames())

	assert.False(t, app.executeCommand(QuitCommand{}))
	assert.Nil(t, app.frames())
	assert.False(t, app.animate(time.Now()))
}

func TestAppendCommand(t *testing.T) {
	assert.Nil(t, AppendCommand(nil, nil))
	assert.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
	assert.Equal(t, RedrawCommand{}, AppendCommand(RedrawCommand{}, nil))
	assert.Equal(t,
		BatchCommand{RedrawCommand{}, QuitCommand{}, ConsumeEventCommand{}},
		AppendCommand(BatchCommand{RedrawCommand{}}, BatchCommand{QuitCommand{}, ConsumeEventCommand{}}),
	)
}
