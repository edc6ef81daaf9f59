package indicators

// Default MACD spans.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDResult holds the MACD line, its signal line and their difference.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the latest MACD values. Series shorter than
// max(fast, slow, signal)+2 yield the neutral zero result.
func MACD(series []float64, fast, slow, signal int) MACDResult {
	if len(series) < maxInt(fast, slow, signal)+2 {
		return MACDResult{}
	}
	emaFast := ewmaSeries(series, fast)
	emaSlow := ewmaSeries(series, slow)
	macd := make([]float64, len(series))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	sig := ewmaSeries(macd, signal)
	last := len(series) - 1
	return MACDResult{
		MACD:      macd[last],
		Signal:    sig[last],
		Histogram: macd[last] - sig[last],
	}
}

// MACDHistSeries returns one histogram value per input point, zero-padded
// through the warm-up window so the output stays aligned with the input.
func MACDHistSeries(series []float64, fast, slow, signal int) []float64 {
	out := make([]float64, len(series))
	if len(series) < maxInt(fast, slow, signal)+2 {
		return out
	}
	emaFast := ewmaSeries(series, fast)
	emaSlow := ewmaSeries(series, slow)
	macd := make([]float64, len(series))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	sig := ewmaSeries(macd, signal)
	warmup := slow + signal - 2
	for i := warmup; i < len(series); i++ {
		out[i] = macd[i] - sig[i]
	}
	return out
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
