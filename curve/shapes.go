package curve

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bézier curve.
const kappa = 0.5522847498

// Ellipse returns a closed path around (cx, cy). It starts at the top and
// runs clockwise.
func Ellipse(cx, cy, rx, ry float64) *Path {
	return NewPath(cx, cy-ry).EllipseLoop(rx, ry)
}

// EllipseLoop appends a clockwise ellipse whose top is the current end of the
// path, so the path comes back to where it was.
func (p *Path) EllipseLoop(rx, ry float64) *Path {
	top := p.End()
	cx, cy := top.X, top.Y+ry
	kx, ky := rx*kappa, ry*kappa
	return p.
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy).
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
}

// Line returns a straight open path.
func Line(x1, y1, x2, y2 float64) *Path {
	return NewPath(x1, y1).LineTo(x2, y2)
}

// Polyline returns a path through the given points. It returns nil when
// points is empty.
func Polyline(points ...Point) *Path {
	if len(points) == 0 {
		return nil
	}
	p := NewPath(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return p
}
