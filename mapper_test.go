package pathview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	tests := []struct {
		x, m, want float64
	}{
		{12, 10, 2},
		{-1, 10, 9},
		{-10, 10, 0},
		{3.5, 0, 0},
		{-1e-17, 10, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, mod(tt.x, tt.m), 1e-12, "mod(%v, %v)", tt.x, tt.m)
	}
}

func TestRemainder(t *testing.T) {
	assert.Equal(t, 4, remainder(-1, 5))
	assert.Equal(t, 2, remainder(12, 5))
	assert.Equal(t, 0, remainder(7, 0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3, round(2.5))
	assert.Equal(t, 0, round(-0.5))
	assert.Equal(t, 1, round(1.49))
	assert.Equal(t, -2, round(-1.6))
}

func TestPositionOfIndex_WholeModelOnPath(t *testing.T) {
	p, _, _ := newTestView(t, 5)

	for i := range 5 {
		assert.InDelta(t, float64(i)/5, p.PositionOfIndex(i), 1e-9)
	}

	p.SetCurrentIndex(3)
	assert.InDelta(t, 0, p.PositionOfIndex(3), 1e-9)
	assert.InDelta(t, 0.2, p.PositionOfIndex(4), 1e-9)
	assert.InDelta(t, 0.4, p.PositionOfIndex(0), 1e-9)
}

func TestPositionOfIndex_OutOfBounds(t *testing.T) {
	p, _, _ := newTestView(t, 5)

	assert.Equal(t, -1.0, p.PositionOfIndex(-1))
	assert.Equal(t, -1.0, p.PositionOfIndex(5))
}

func TestPositionOfIndex_Windowed(t *testing.T) {
	p, _, _ := newTestView(t, 10, withPathItems(5))

	assert.InDelta(t, 0, p.PositionOfIndex(0), 1e-9)
	assert.InDelta(t, 0.8, p.PositionOfIndex(4), 1e-9)
	// Off the path from here on.
	assert.InDelta(t, 1, p.PositionOfIndex(5), 1e-9)
	assert.InDelta(t, 1.8, p.PositionOfIndex(9), 1e-9)
}

func TestPositionOfIndex_WindowedWithRange(t *testing.T) {
	p, _, _ := newTestView(t, 10, withPathItems(5), func(p *PathView) {
		p.SetPreferredHighlightEnd(0.5)
		p.SetPreferredHighlightBegin(0.5)
	})

	assert.InDelta(t, 0.5, p.PositionOfIndex(0), 1e-9)
	assert.InDelta(t, 0.1, p.PositionOfIndex(8), 1e-9)
}

func TestPositionOfIndex_NoRangeIgnoresStart(t *testing.T) {
	p, _, _ := newTestView(t, 4, func(p *PathView) {
		p.SetPreferredHighlightEnd(0.5)
		p.SetPreferredHighlightBegin(0.5)
		p.SetHighlightRangeMode(NoHighlightRange)
	})

	assert.InDelta(t, 0, p.PositionOfIndex(0), 1e-9)

	p.SetSnapMode(SnapToItem)
	assert.InDelta(t, 0.5, p.PositionOfIndex(0), 1e-9)
}

func TestIsInBound(t *testing.T) {
	p := NewPathView()

	assert.True(t, p.isInBound(0.5, 0.2, 0.8))
	assert.False(t, p.isInBound(0.9, 0.2, 0.8))
	assert.False(t, p.isInBound(0.8, 0.2, 0.8))

	// Wrapping through zero.
	assert.True(t, p.isInBound(0.9, 0.8, 0.2))
	assert.True(t, p.isInBound(0.1, 0.8, 0.2))
	assert.False(t, p.isInBound(0.5, 0.8, 0.2))

	assert.True(t, p.isInBound(0.3, 0.4, 0.4))
}

func TestCalcCurrentIndex(t *testing.T) {
	p, _, _ := newTestView(t, 10)

	p.SetOffset(7.6)
	assert.Equal(t, 2, p.GetCurrentIndex())
	p.SetOffset(7.4)
	assert.Equal(t, 3, p.GetCurrentIndex())
	p.SetOffset(0.2)
	assert.Equal(t, 0, p.GetCurrentIndex())
	p.SetOffset(-1)
	assert.InDelta(t, 9, p.GetOffset(), 1e-9)
	assert.Equal(t, 1, p.GetCurrentIndex())
}
