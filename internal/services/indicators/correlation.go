package indicators

import "math"

// Correlation computes the Pearson correlation of the trailing window of two
// series. The series are tail-aligned first. Short input or a degenerate
// window yields 0.
func Correlation(a, b []float64, window int) float64 {
	if window <= 0 || len(a) < window || len(b) < window {
		return 0.0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	x := a[len(a)-n:][n-window:]
	y := b[len(b)-n:][n-window:]

	meanX, meanY := 0.0, 0.0
	for i := 0; i < window; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(window)
	meanY /= float64(window)

	var cov, varX, varY float64
	for i := 0; i < window; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0.0
	}
	r := cov / math.Sqrt(varX*varY)
	return sanitize(r, 0.0)
}
