package pathview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementCurrentIndex_Twice(t *testing.T) {
	p, _, r := newTestView(t, 10)

	p.IncrementCurrentIndex()
	p.IncrementCurrentIndex()

	assert.Equal(t, 2, p.GetCurrentIndex())
	assert.InDelta(t, 8, p.GetOffset(), 1e-9)
	assert.Equal(t, 2, r.count(OffsetChanged))
	assert.Equal(t, 2, r.count(CurrentIndexChanged))
	assert.Equal(t, 2, r.count(CurrentItemChanged))
	assert.Equal(t, "2", textOf(p.GetCurrentItem()))
}

func TestSetCurrentIndex_StrictRangePlacesItemAtRangeStart(t *testing.T) {
	p, _, _ := newTestView(t, 5, func(p *PathView) {
		p.SetPreferredHighlightEnd(0.5)
		p.SetPreferredHighlightBegin(0.5)
	})

	p.SetCurrentIndex(3)
	assert.InDelta(t, 0.5, p.PositionOfIndex(3), 1e-9)
}

func TestSetCurrentIndex_RoundTrip(t *testing.T) {
	p, _, _ := newTestView(t, 10, func(p *PathView) {
		p.SetPreferredHighlightEnd(0.6)
		p.SetPreferredHighlightBegin(0.3)
	})

	for _, k := range []int{4, 9, 0, 7, 1} {
		p.SetCurrentIndex(k)
		assert.InDelta(t, 0.3, p.PositionOfIndex(k), 1e-9, "index %d", k)
		assertConsistent(t, p)
	}
}

func TestSetCurrentIndex_Wraps(t *testing.T) {
	p, _, _ := newTestView(t, 10)

	p.SetCurrentIndex(-1)
	assert.Equal(t, 9, p.GetCurrentIndex())
	p.SetCurrentIndex(12)
	assert.Equal(t, 2, p.GetCurrentIndex())
}

func TestDecrementCurrentIndex_FromFirst(t *testing.T) {
	p, _, _ := newTestView(t, 10)

	p.DecrementCurrentIndex()
	assert.Equal(t, 9, p.GetCurrentIndex())
	assert.InDelta(t, 1, p.GetOffset(), 1e-9)
}

func TestSetCurrentIndex_SameIndexIsQuiet(t *testing.T) {
	p, _, r := newTestView(t, 10)

	p.SetCurrentIndex(0)
	assert.Empty(t, r.events)
}

func TestSetCurrentIndex_KeepsOldItemWhileLive(t *testing.T) {
	p, model, _ := newTestView(t, 5)
	first := p.GetCurrentItem()

	p.SetCurrentIndex(1)
	assert.False(t, p.AttachedOf(first).IsCurrentItem())
	assert.Equal(t, 0, model.IndexOf(first))
	assert.True(t, p.AttachedOf(p.GetCurrentItem()).IsCurrentItem())
}

func TestSetCurrentIndex_AnimationDoesNotOverrideIndex(t *testing.T) {
	p, _, r := newTestView(t, 10)
	p.SetHighlightMoveDuration(100 * time.Millisecond)

	p.SetCurrentIndex(2)
	require.Equal(t, 2, p.GetCurrentIndex())
	assert.Equal(t, 1, r.count(CurrentIndexChanged))

	t0 := time.Now()
	require.True(t, p.Animate(t0))
	require.True(t, p.Animate(t0.Add(50*time.Millisecond)))
	// Halfway through the turn the offset points between 1 and 2.
	assert.InDelta(t, 9, p.GetOffset(), 1e-9)
	assert.Equal(t, 2, p.GetCurrentIndex())

	assert.False(t, p.Animate(t0.Add(200*time.Millisecond)))
	assert.InDelta(t, 8, p.GetOffset(), 1e-9)
	assert.Equal(t, 2, p.GetCurrentIndex())
	assert.Equal(t, 1, r.count(CurrentIndexChanged))
}

func TestSetCurrentIndex_MovementDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction MovementDirection
		halfway   float64
	}{
		{"negative", Negative, 4.5},
		{"positive", Positive, 9.5},
		{"shortest", Shortest, 9.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newTestView(t, 10)
			p.SetHighlightMoveDuration(100 * time.Millisecond)
			p.SetMovementDirection(tt.direction)

			p.SetCurrentIndex(1)
			t0 := time.Now()
			p.Animate(t0)
			p.Animate(t0.Add(50 * time.Millisecond))
			assert.InDelta(t, tt.halfway, p.GetOffset(), 1e-9)

			p.Animate(t0.Add(time.Second))
			assert.InDelta(t, 9, p.GetOffset(), 1e-9)
			assert.Equal(t, 1, p.GetCurrentIndex())
		})
	}
}

func TestPositionViewAtIndex(t *testing.T) {
	tests := []struct {
		name    string
		mode    PositionMode
		offset  float64
		current int
	}{
		{"beginning", PositionBeginning, 7, 3},
		{"center", PositionCenter, 9, 1},
		{"end", PositionEnd, 1, 9},
		{"snap", PositionSnap, 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newTestView(t, 10, withPathItems(5))

			p.PositionViewAtIndex(3, tt.mode)
			assert.InDelta(t, tt.offset, p.GetOffset(), 1e-9)
			assert.Equal(t, tt.current, p.GetCurrentIndex())
			assertConsistent(t, p)
		})
	}
}

func TestPositionViewAtIndex_Ignored(t *testing.T) {
	p, _, _ := newTestView(t, 10)

	// Contain needs a window.
	p.PositionViewAtIndex(3, PositionContain)
	assert.Zero(t, p.GetOffset())

	p.PositionViewAtIndex(3, PositionMode(42))
	assert.Zero(t, p.GetOffset())
}

func TestPositionViewAtIndex_StopsMotion(t *testing.T) {
	p, _, _ := newTestView(t, 10)
	p.SetHighlightMoveDuration(100 * time.Millisecond)
	p.SetCurrentIndex(5)
	require.True(t, p.tl.IsActive())

	p.PositionViewAtIndex(2, PositionSnap)
	assert.False(t, p.tl.IsActive())
	assert.InDelta(t, 8, p.GetOffset(), 1e-9)
	assert.Equal(t, 2, p.GetCurrentIndex())
}

func TestIndexAt(t *testing.T) {
	p, _, _ := newTestView(t, 5)

	assert.Equal(t, 0, p.IndexAt(0, 5))
	assert.Equal(t, 1, p.IndexAt(20, 5))
	assert.Equal(t, 4, p.IndexAt(80, 5))
	assert.Equal(t, -1, p.IndexAt(21, 5))
	assert.Nil(t, p.ItemAt(20, 4))
}
