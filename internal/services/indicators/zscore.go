package indicators

import "math"

// ZScoreResult holds the standardized distance of the latest value from the
// trailing window mean.
type ZScoreResult struct {
	Z      float64
	Mean   float64
	StdDev float64
}

// ZScore measures how far the last value sits from the mean of the trailing
// window, in sample standard deviations. Short or flat input yields the
// neutral zero result.
func ZScore(series []float64, window int) ZScoreResult {
	if window <= 0 || len(series) < window {
		return ZScoreResult{}
	}
	tail := series[len(series)-window:]

	mean := 0.0
	for _, v := range tail {
		mean += v
	}
	mean /= float64(window)

	variance := 0.0
	for _, v := range tail {
		d := v - mean
		variance += d * d
	}
	if window > 1 {
		variance /= float64(window - 1)
	}
	std := math.Sqrt(variance)
	if std == 0 || math.IsNaN(std) {
		return ZScoreResult{Z: 0, Mean: mean, StdDev: std}
	}
	return ZScoreResult{
		Z:      (series[len(series)-1] - mean) / std,
		Mean:   mean,
		StdDev: std,
	}
}
