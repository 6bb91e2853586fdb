package pathview

import (
	"math"
	"testing"
	"time"

	"github.com/ayn2op/pathview/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x float64) curve.Point {
	return curve.Point{X: x, Y: 5}
}

// drag presses at from and moves the pointer by step every 10ms, n times.
func drag(p *PathView, t0 time.Time, from, step float64, n int) time.Time {
	p.handlePress(at(from), true, t0)
	when := t0
	for i := 1; i <= n; i++ {
		when = t0.Add(time.Duration(i) * 10 * time.Millisecond)
		p.handleMove(at(from+step*float64(i)), when)
	}
	return when
}

// settle animates p until its motion ends.
func settle(t *testing.T, p *PathView, from time.Time) {
	t.Helper()
	now := from
	for i := 0; p.Animate(now); i++ {
		require.Less(t, i, 1000, "motion did not end")
		now = now.Add(FrameInterval)
	}
}

func TestGesture_SmallDragIsNotClaimed(t *testing.T) {
	p, _, r := newTestView(t, 10)
	t0 := time.Now()

	p.handlePress(at(50), true, t0)
	p.handleMove(at(50.5), t0.Add(10*time.Millisecond))
	p.handleRelease(t0.Add(20 * time.Millisecond))

	assert.False(t, p.IsDragging())
	assert.False(t, p.IsMoving())
	assert.Zero(t, p.GetOffset())
	assert.Zero(t, r.count(MovementStarted))
	assert.Zero(t, r.count(DragStarted))
}

func TestGesture_SlowReleaseSettles(t *testing.T) {
	p, _, r := newTestView(t, 10)
	t0 := time.Now()

	p.handlePress(at(50), true, t0)
	p.handleMove(at(53), t0.Add(time.Second))
	p.handleMove(at(54), t0.Add(2*time.Second))
	require.True(t, p.IsDragging())
	require.True(t, p.IsMoving())
	p.handleMove(at(55), t0.Add(3*time.Second))
	p.handleRelease(t0.Add(3 * time.Second))

	assert.Zero(t, r.count(FlickStarted))
	assert.False(t, p.IsFlicking())
	assert.False(t, p.IsMoving())
	assert.False(t, p.IsDragging())
	assert.InDelta(t, 0, p.GetOffset(), 1e-9)
	assert.Equal(t, 0, p.GetCurrentIndex())
	assert.Equal(t, 1, r.count(MovementStarted))
	assert.Equal(t, 1, r.count(MovementEnded))
	assert.Equal(t, 1, r.count(DragStarted))
	assert.Equal(t, 1, r.count(DragEnded))
}

func TestGesture_DragTurnsTheView(t *testing.T) {
	p, _, r := newTestView(t, 10)
	t0 := time.Now()

	drag(p, t0, 10, 10, 4)

	// The first move only claims the gesture; each later one turns by one
	// item.
	assert.InDelta(t, 3, p.GetOffset(), 0.1)
	assert.Equal(t, 7, p.GetCurrentIndex())
	assert.True(t, p.IsDragging())
	assert.Equal(t, 3, r.count(CurrentIndexChanged))
}

func TestGesture_FastReleaseFlicks(t *testing.T) {
	p, _, r := newTestView(t, 10)
	t0 := time.Now()

	last := drag(p, t0, 10, 10, 4)
	p.handleRelease(last)

	require.True(t, p.IsFlicking())
	assert.Equal(t, 1, r.count(FlickStarted))
	assert.True(t, p.IsMoving())
	assert.False(t, p.IsDragging())

	settle(t, p, last)

	assert.False(t, p.IsFlicking())
	assert.False(t, p.IsMoving())
	assert.Equal(t, 1, r.count(FlickEnded))
	assert.Equal(t, 1, r.count(MovementEnded))
	// Nine items of travel at the speed limit, landing on a boundary.
	assert.InDelta(t, 2, p.GetOffset(), 1e-9)
	assert.Equal(t, 8, p.GetCurrentIndex())
	assert.InDelta(t, 0, p.PositionOfIndex(8), 1e-9)
}

func TestGesture_PressDuringFlickCatches(t *testing.T) {
	p, _, _ := newTestView(t, 10)
	t0 := time.Now()

	last := drag(p, t0, 10, 10, 4)
	p.handleRelease(last)
	require.True(t, p.IsFlicking())

	p.handlePress(at(50), true, last.Add(time.Millisecond))
	assert.True(t, p.gesture.steal)
	assert.False(t, p.tl.IsActive())
}

func TestGesture_UngrabSettles(t *testing.T) {
	p, _, r := newTestView(t, 10)
	t0 := time.Now()

	drag(p, t0, 10, 10, 4)
	require.True(t, p.IsDragging())

	p.MouseUngrab()

	assert.False(t, p.gesture.steal)
	assert.False(t, p.IsDragging())
	assert.False(t, p.IsMoving())
	assert.False(t, p.tl.IsActive())
	assert.InDelta(t, 3, p.GetOffset(), 1e-9)
	assert.Equal(t, 7, p.GetCurrentIndex())
	assert.Equal(t, 1, r.count(MovementEnded))
}

func TestGesture_NotInteractive(t *testing.T) {
	p, _, r := newTestView(t, 10)
	p.SetInteractive(false)
	t0 := time.Now()

	drag(p, t0, 10, 10, 4)
	p.handleRelease(t0.Add(time.Second))

	assert.Zero(t, p.GetOffset())
	assert.Zero(t, r.count(MovementStarted))
}

// flickInFlight starts a flick and runs it for a couple of frames.
func flickInFlight(t *testing.T, p *PathView) {
	t.Helper()
	last := drag(p, time.Now(), 10, 10, 4)
	p.handleRelease(last)
	p.Animate(last.Add(FrameInterval))
	p.Animate(last.Add(2 * FrameInterval))
	require.True(t, p.IsFlicking())
	require.True(t, p.IsMoving())
}

func TestGesture_DisablingStopsFlick(t *testing.T) {
	p, _, r := newTestView(t, 10)
	flickInFlight(t, p)

	p.SetInteractive(false)

	assert.False(t, p.IsFlicking())
	assert.False(t, p.IsMoving())
	assert.False(t, p.tl.IsActive())
	assert.InDelta(t, math.Round(p.GetOffset()), p.GetOffset(), 1e-9)
	assert.Equal(t, 1, r.count(FlickEnded))
	assert.Equal(t, 1, r.count(MovementEnded))
	assertConsistent(t, p)
}

func TestGesture_PositionViewAtIndexStopsFlick(t *testing.T) {
	p, _, r := newTestView(t, 10)
	flickInFlight(t, p)

	p.PositionViewAtIndex(3, PositionSnap)

	assert.False(t, p.IsFlicking())
	assert.False(t, p.IsMoving())
	assert.False(t, p.tl.IsActive())
	assert.Equal(t, 1, r.count(FlickEnded))
	assert.Equal(t, 1, r.count(MovementEnded))
	assert.InDelta(t, 0, p.PositionOfIndex(3), 1e-9)
}

func TestGesture_PressOffPathNeedsDragMargin(t *testing.T) {
	p, _, _ := newTestView(t, 10)
	t0 := time.Now()

	p.handlePress(curve.Point{X: 50, Y: 8}, false, t0)
	assert.False(t, p.gesture.tracking)

	p.SetDragMargin(4)
	p.handlePress(curve.Point{X: 50, Y: 8}, false, t0)
	assert.True(t, p.gesture.tracking)
}

func TestCalcVelocity_DropsNewestSample(t *testing.T) {
	p := NewPathView()

	assert.Zero(t, p.calcVelocity())
	p.addVelocitySample(4)
	assert.Zero(t, p.calcVelocity())
	p.addVelocitySample(2)
	p.addVelocitySample(100)
	assert.InDelta(t, 3, p.calcVelocity(), 1e-9)

	// The buffer keeps the latest samples only.
	p.addVelocitySample(6)
	assert.Equal(t, []float64{2, 100, 6}, p.gesture.velocity)
	assert.InDelta(t, 51, p.calcVelocity(), 1e-9)
}
