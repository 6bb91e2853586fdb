package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointNear_OnLine(t *testing.T) {
	p := Line(0, 0, 100, 0)

	pt, at := PointNear(p, Point{X: 40, Y: 3})
	assert.InDelta(t, 40, pt.X, 0.5)
	assert.InDelta(t, 0, pt.Y, 1e-9)
	assert.InDelta(t, 0.4, at, 0.01)
}

func TestPointNear_BeyondEnds(t *testing.T) {
	p := Line(0, 0, 100, 0)

	_, at := PointNear(p, Point{X: -20, Y: 0})
	assert.InDelta(t, 0, at, 0.01)

	_, at = PointNear(p, Point{X: 99, Y: 10})
	assert.InDelta(t, 0.99, at, 0.01)
}

func TestPointNear_Ellipse(t *testing.T) {
	e := Ellipse(50, 50, 40, 40)

	// A point right of the centre is nearest to the quarter mark.
	pt, at := PointNear(e, Point{X: 95, Y: 50})
	assert.InDelta(t, 90, pt.X, 1)
	assert.InDelta(t, 50, pt.Y, 1)
	assert.InDelta(t, 0.25, at, 0.01)
}

func TestPointNear_ShortPathReachesItsEnd(t *testing.T) {
	for _, length := range []float64{4, 12} {
		p := Line(0, 0, length, 0)

		pt, at := PointNear(p, Point{X: length + 6, Y: 1})
		assert.InDelta(t, 1, at, 1e-9, "length %v", length)
		assert.InDelta(t, length, pt.X, 1e-9, "length %v", length)

		_, at = PointNear(p, Point{X: length / 2, Y: 1})
		assert.InDelta(t, 0.5, at, 0.1, "length %v", length)
	}
}

func TestPointNear_DegeneratePath(t *testing.T) {
	p := NewPath(7, 7)

	pt, at := PointNear(p, Point{X: 1, Y: 1})
	assert.Equal(t, Point{7, 7}, pt)
	assert.Zero(t, at)
}
