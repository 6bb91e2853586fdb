package curve

import "math"

const maxNearSamples = 500

// PointNear returns the point on c closest to p together with its parameter.
// The curve is sampled coarsely, about one sample every five cells, and the
// best sample is then refined at twice that resolution.
func PointNear(c Curve, p Point) (Point, float64) {
	length := c.Length()
	if length <= 0 {
		return c.PointAt(0), 0
	}

	// samples is fractional so the parameter grid spans the whole curve.
	samples := math.Min(length/5, maxNearSamples)
	res := length / samples

	best := c.PointAt(0)
	bestDist := best.Distance(p)
	bestAt := 0.0

	// coarse pass
	for i := 1.0; i < samples; i++ {
		pt := c.PointAt(i / samples)
		if d := pt.Distance(p); d < bestDist {
			best, bestDist, bestAt = pt, d, i
		}
	}

	// refine around the coarse result, clamping to the ends
	step := 1 / (2 * res)
	approx := bestAt
	for k := 0; ; k++ {
		i := approx - 1 + float64(k)*step
		if i >= approx+1 {
			break
		}
		i = min(max(i, 0), samples)
		pt := c.PointAt(i / samples)
		if d := pt.Distance(p); d < bestDist {
			best, bestDist, bestAt = pt, d, i
		}
	}

	return best, bestAt / samples
}
