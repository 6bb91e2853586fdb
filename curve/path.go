package curve

import (
	"math"
	"slices"
	"sort"
)

// Curve is the read-only view of a path that a PathView consumes. The
// version changes whenever the geometry or the attributes change, so a
// consumer can tell a stale layout from a current one without diffing.
type Curve interface {
	PointAt(t float64) Point
	AttributeAt(name string, t float64) float64
	Attributes() []string
	Length() float64
	Version() uint64
}

// Tolerance is the maximum distance between a flattened curve segment and
// the curve itself, in cells.
var Tolerance = 0.05

const maxSubdivision = 16

type elementKind int

const (
	elementLine elementKind = iota
	elementQuad
	elementCubic
	elementAttribute
	elementPercent
)

type element struct {
	kind   elementKind
	c1, c2 Point
	to     Point
	name   string
	value  float64
}

func (e element) draws() bool {
	return e.kind == elementLine || e.kind == elementQuad || e.kind == elementCubic
}

// knot maps a position on one axis to a value, for piecewise linear lookups.
type knot struct {
	at, value float64
}

// Path is a mutable parametric curve made of line, quadratic and cubic
// segments. Attribute elements attach named values to the position where
// they appear, and percent elements pin how much of the parameter range is
// spent on the segments before them.
//
// The zero value is not usable; create paths with NewPath.
type Path struct {
	start    Point
	elements []element
	version  uint64
	changed  func()

	built    bool
	points   []Point
	cum      []float64
	total    float64
	percents []knot
	attrs    map[string][]knot
	names    []string
}

// NewPath returns an empty path starting at (x, y).
func NewPath(x, y float64) *Path {
	return &Path{start: Point{X: x, Y: y}}
}

// Start returns the starting point.
func (p *Path) Start() Point {
	return p.start
}

// SetStart moves the starting point.
func (p *Path) SetStart(x, y float64) *Path {
	if p.start.X != x || p.start.Y != y {
		p.start = Point{X: x, Y: y}
		p.touch()
	}
	return p
}

// LineTo appends a straight segment.
func (p *Path) LineTo(x, y float64) *Path {
	return p.add(element{kind: elementLine, to: Point{X: x, Y: y}})
}

// QuadTo appends a quadratic Bézier segment with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	return p.add(element{kind: elementQuad, c1: Point{X: cx, Y: cy}, to: Point{X: x, Y: y}})
}

// CubicTo appends a cubic Bézier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	return p.add(element{
		kind: elementCubic,
		c1:   Point{X: c1x, Y: c1y},
		c2:   Point{X: c2x, Y: c2y},
		to:   Point{X: x, Y: y},
	})
}

// Close appends a straight segment back to the starting point.
func (p *Path) Close() *Path {
	return p.LineTo(p.start.X, p.start.Y)
}

// Attribute sets the value of the named attribute at the current end of the
// path. Values between two attribute elements are interpolated linearly.
func (p *Path) Attribute(name string, value float64) *Path {
	if name == "" {
		return p
	}
	return p.add(element{kind: elementAttribute, name: name, value: value})
}

// Percent pins the parameter at the current end of the path to value. It is
// ignored before the first segment and when it would make the parameter run
// backwards.
func (p *Path) Percent(value float64) *Path {
	if value < 0 || value > 1 {
		return p
	}
	return p.add(element{kind: elementPercent, value: value})
}

// Clear removes every element, keeping the starting point.
func (p *Path) Clear() *Path {
	if len(p.elements) > 0 {
		p.elements = nil
		p.touch()
	}
	return p
}

// SetChangedFunc sets a handler which is called after every mutation.
func (p *Path) SetChangedFunc(handler func()) *Path {
	p.changed = handler
	return p
}

// Version returns a counter which is bumped on every mutation.
func (p *Path) Version() uint64 {
	return p.version
}

// End returns the point the last segment ends at, or the start when there
// are no segments yet.
func (p *Path) End() Point {
	end := p.start
	for _, e := range p.elements {
		if e.draws() {
			end = e.to
		}
	}
	return end
}

// Closed reports whether the path ends where it starts.
func (p *Path) Closed() bool {
	return len(p.elements) > 0 && p.End().Distance(p.start) < 1e-9
}

// Length returns the length of the flattened path.
func (p *Path) Length() float64 {
	p.build()
	return p.total
}

// Attributes returns the attribute names in order of first appearance.
func (p *Path) Attributes() []string {
	p.build()
	return slices.Clone(p.names)
}

// PointAt returns the point at parameter t. t is clamped to [0, 1].
func (p *Path) PointAt(t float64) Point {
	p.build()
	if len(p.points) < 2 || p.total == 0 {
		return p.start
	}

	target := lookup(p.percents, clamp01(t), true) * p.total
	i := sort.SearchFloat64s(p.cum, target)
	switch {
	case i == 0:
		return p.points[0]
	case i >= len(p.points):
		return p.points[len(p.points)-1]
	}

	span := p.cum[i] - p.cum[i-1]
	if span == 0 {
		return p.points[i]
	}
	return p.points[i-1].Lerp(p.points[i], (target-p.cum[i-1])/span)
}

// AttributeAt returns the value of the named attribute at parameter t.
// Unknown attributes are 0. Before the first and after the last attribute
// element the nearest value is held.
func (p *Path) AttributeAt(name string, t float64) float64 {
	p.build()
	knots := p.attrs[name]
	if len(knots) == 0 {
		return 0
	}
	return lookup(knots, clamp01(t), false)
}

func (p *Path) add(e element) *Path {
	p.elements = append(p.elements, e)
	p.touch()
	return p
}

func (p *Path) touch() {
	p.version++
	p.built = false
	if p.changed != nil {
		p.changed()
	}
}

func (p *Path) appendPoint(pt Point) {
	last := p.points[len(p.points)-1]
	p.total += last.Distance(pt)
	p.points = append(p.points, pt)
	p.cum = append(p.cum, p.total)
}

func (p *Path) build() {
	if p.built {
		return
	}
	p.built = true

	p.points = append(p.points[:0], p.start)
	p.cum = append(p.cum[:0], 0)
	p.total = 0
	p.names = p.names[:0]
	p.attrs = make(map[string][]knot)

	type mark struct {
		arc   float64
		name  string
		value float64
	}
	var (
		marks   []mark
		pins    []knot
		current = p.start
		drawn   bool
	)
	for _, e := range p.elements {
		switch e.kind {
		case elementLine:
			p.appendPoint(e.to)
		case elementQuad:
			for _, pt := range flattenQuadratic(current, e.c1, e.to, Tolerance) {
				p.appendPoint(pt)
			}
		case elementCubic:
			for _, pt := range flattenCubic(current, e.c1, e.c2, e.to, Tolerance) {
				p.appendPoint(pt)
			}
		case elementAttribute:
			marks = append(marks, mark{arc: p.total, name: e.name, value: e.value})
		case elementPercent:
			if drawn {
				pins = append(pins, knot{at: p.total, value: e.value})
			}
		}
		if e.draws() {
			current = e.to
			drawn = true
		}
	}

	// Percent knots map arc fraction to parameter.
	p.percents = append(p.percents[:0], knot{})
	for _, pin := range pins {
		last := p.percents[len(p.percents)-1]
		at := p.fraction(pin.at)
		if at <= last.at || pin.value < last.value {
			continue
		}
		p.percents = append(p.percents, knot{at: at, value: pin.value})
	}
	if last := &p.percents[len(p.percents)-1]; last.at >= 1 {
		last.value = 1
	} else {
		p.percents = append(p.percents, knot{at: 1, value: 1})
	}

	for _, m := range marks {
		if _, ok := p.attrs[m.name]; !ok {
			p.names = append(p.names, m.name)
		}
		t := lookup(p.percents, p.fraction(m.arc), false)
		p.attrs[m.name] = append(p.attrs[m.name], knot{at: t, value: m.value})
	}
}

func (p *Path) fraction(arc float64) float64 {
	if p.total == 0 {
		return 0
	}
	return clamp01(arc / p.total)
}

// lookup interpolates knots at x. With inverse set, x is matched against the
// knot values and the result is the interpolated position.
func lookup(knots []knot, x float64, inverse bool) float64 {
	key := func(k knot) float64 { return k.at }
	val := func(k knot) float64 { return k.value }
	if inverse {
		key, val = val, key
	}

	if x <= key(knots[0]) {
		return val(knots[0])
	}
	for i := 1; i < len(knots); i++ {
		lo, hi := knots[i-1], knots[i]
		if x > key(hi) {
			continue
		}
		span := key(hi) - key(lo)
		if span <= 0 {
			return val(hi)
		}
		f := (x - key(lo)) / span
		return val(lo) + (val(hi)-val(lo))*f
	}
	return val(knots[len(knots)-1])
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return math.Max(0, math.Min(1, t))
}

func flattenQuadratic(p0, p1, p2 Point, tolerance float64) []Point {
	var points []Point
	flattenQuadraticRec(p0, p1, p2, tolerance, 0, &points)
	return points
}

func flattenQuadraticRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	if depth >= maxSubdivision || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuadraticRec(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadraticRec(q2, q1, p2, tolerance, depth+1, points)
}

func flattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	var points []Point
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxSubdivision || dist < tolerance {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}
