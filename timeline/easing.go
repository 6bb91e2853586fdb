package timeline

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear does not ease.
func Linear(t float64) float64 {
	return t
}

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 {
	return t * t
}

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 {
	return -t * (t - 2)
}

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	t *= 2
	if t < 1 {
		return t * t / 2
	}
	t--
	return -0.5 * (t*(t-2) - 1)
}
