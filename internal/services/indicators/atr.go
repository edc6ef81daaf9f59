package indicators

import (
	"math"

	"CryptoSignalBot/internal/models"
)

// ATRPercent computes the average true range over the trailing period as a
// percentage of the latest close. Fewer than max(period, 2) candles or a
// zero close yield 0.
func ATRPercent(candles models.CandleSeries, period int) float64 {
	if len(candles) < maxInt(period, 2) {
		return 0.0
	}
	tr := make([]float64, len(candles))
	tr[0] = candles[0].High - candles[0].Low
	for i := 1; i < len(candles); i++ {
		hl := candles[i].High - candles[i].Low
		hc := math.Abs(candles[i].High - candles[i-1].Close)
		lc := math.Abs(candles[i].Low - candles[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	lo := len(tr) - period
	if lo < 0 {
		lo = 0
	}
	sum := 0.0
	for _, v := range tr[lo:] {
		sum += v
	}
	atr := sum / float64(len(tr)-lo)

	lastClose := candles[len(candles)-1].Close
	if lastClose == 0 {
		return 0.0
	}
	return sanitize(atr/lastClose*100.0, 0.0)
}
