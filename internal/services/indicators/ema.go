package indicators

// EMASeries computes an exponential moving average seeded with the simple
// average of the first period values. out[i] corresponds to series[period-1+i].
// When the series is shorter than period the window shrinks to the series
// length, so a non-empty input always yields at least one value.
func EMASeries(series []float64, period int) []float64 {
	if len(series) == 0 || period <= 0 {
		return nil
	}
	if period > len(series) {
		period = len(series)
	}
	alpha := 2.0 / (float64(period) + 1.0)

	seed := 0.0
	for _, v := range series[:period] {
		seed += v
	}
	seed /= float64(period)

	out := make([]float64, 0, len(series)-period+1)
	out = append(out, seed)
	prev := seed
	for _, v := range series[period:] {
		prev = v*alpha + prev*(1-alpha)
		out = append(out, prev)
	}
	return out
}

// EMA returns the latest exponential moving average value.
func EMA(series []float64, period int) float64 {
	out := EMASeries(series, period)
	if len(out) == 0 {
		return 0
	}
	return out[len(out)-1]
}

// ewmaSeries is the recursive exponential mean seeded with the first value.
// Output has the same length as the input. Used by MACD internally.
func ewmaSeries(series []float64, span int) []float64 {
	if len(series) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = series[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}
