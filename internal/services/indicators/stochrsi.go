package indicators

// StochRSIResult holds smoothed stochastic RSI lines on the 0..1 scale.
type StochRSIResult struct {
	K float64
	D float64
}

// StochRSI stochastically normalizes a rolling-mean RSI over its own trailing
// range, then smooths with two rolling means. Series shorter than
// max(period, smoothK, smoothD)+5 yield the neutral {0.5, 0.5}.
func StochRSI(series []float64, period, smoothK, smoothD int) StochRSIResult {
	if len(series) < maxInt(period, smoothK, smoothD)+5 {
		return StochRSIResult{K: 0.5, D: 0.5}
	}

	gains := make([]float64, len(series))
	losses := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}
	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	rsi := make([]float64, len(series))
	for i := range rsi {
		rs := avgGain[i] / (avgLoss[i] + rsiEpsilon)
		rsi[i] = sanitize(100.0-100.0/(1.0+rs), 50.0)
	}

	lo := rollingMin(rsi, period)
	hi := rollingMax(rsi, period)
	stoch := make([]float64, len(rsi))
	for i := range rsi {
		span := hi[i] - lo[i]
		if span == 0 {
			stoch[i] = 0.5
			continue
		}
		stoch[i] = sanitize((rsi[i]-lo[i])/span, 0.5)
	}

	k := rollingMean(stoch, smoothK)
	d := rollingMean(k, smoothD)
	last := len(series) - 1
	return StochRSIResult{
		K: sanitize(k[last], 0.5),
		D: sanitize(d[last], 0.5),
	}
}

// rollingMean averages a trailing window, shrinking it at the start of the
// series instead of padding.
func rollingMean(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	sum := 0.0
	for i, v := range series {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= series[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}

func rollingMin(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		lo := i + 1 - window
		if lo < 0 {
			lo = 0
		}
		m := series[lo]
		for _, v := range series[lo+1 : i+1] {
			if v < m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

func rollingMax(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		lo := i + 1 - window
		if lo < 0 {
			lo = 0
		}
		m := series[lo]
		for _, v := range series[lo+1 : i+1] {
			if v > m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}
