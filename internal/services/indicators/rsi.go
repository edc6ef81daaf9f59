package indicators

import "math"

const rsiEpsilon = 1e-10

// RSI computes Wilder's relative strength index over the full series and
// returns the latest value. Inputs too short to produce a smoothed average
// yield the neutral 50.
func RSI(series []float64, period int) float64 {
	out := RSISeries(series, period)
	if len(out) == 0 {
		return 50.0
	}
	return sanitize(out[len(out)-1], 50.0)
}

// RSISeries returns one RSI value per input point. Positions before the
// warm-up window are padded with the neutral 50 so the output stays aligned
// with the input for divergence scans.
func RSISeries(series []float64, period int) []float64 {
	out := make([]float64, len(series))
	for i := range out {
		out[i] = 50.0
	}
	if period <= 0 || len(series) < period+1 {
		return out
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFrom(avgGain, avgLoss)

	for i := period + 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	rs := avgGain / (avgLoss + rsiEpsilon)
	return sanitize(100.0-100.0/(1.0+rs), 50.0)
}

func sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
