package indicators

import (
	"fmt"
	"sort"

	"CryptoSignalBot/internal/models"
)

// divergenceLookback bounds the scan window to recent price action.
const divergenceLookback = 50

// peakDistance is the minimum spacing between accepted extrema.
const peakDistance = 5

// DivergenceResult reports a price/indicator disagreement on recent extrema.
type DivergenceResult struct {
	Found       bool
	Bullish     bool
	Description string
}

// Divergence compares the last two price extrema against the last two
// indicator extrema over the recent lookback. A lower price low with a higher
// indicator low is bullish; a higher price high with a lower indicator high
// is bearish. The indicator series must be index-aligned with the candles.
func Divergence(candles models.CandleSeries, indicator []float64, name string, periods int) DivergenceResult {
	if len(candles) < periods+10 || len(indicator) < periods+10 {
		return DivergenceResult{Description: "insufficient data"}
	}
	lookback := divergenceLookback
	if len(candles) < lookback {
		lookback = len(candles)
	}
	recent := candles[len(candles)-lookback:]
	ind := indicator[len(indicator)-lookback:]

	lows := recent.Lows()
	highs := recent.Highs()

	priceMinima := findPeaks(negate(lows), peakDistance)
	indMinima := findPeaks(negate(ind), peakDistance)
	if len(priceMinima) >= 2 && len(indMinima) >= 2 {
		p1, p2 := priceMinima[len(priceMinima)-2], priceMinima[len(priceMinima)-1]
		i1, i2 := indMinima[len(indMinima)-2], indMinima[len(indMinima)-1]
		if lows[p2] < lows[p1] && ind[i2] > ind[i1] {
			return DivergenceResult{
				Found:       true,
				Bullish:     true,
				Description: fmt.Sprintf("Bullish %s divergence", name),
			}
		}
	}

	priceMaxima := findPeaks(highs, peakDistance)
	indMaxima := findPeaks(ind, peakDistance)
	if len(priceMaxima) >= 2 && len(indMaxima) >= 2 {
		p1, p2 := priceMaxima[len(priceMaxima)-2], priceMaxima[len(priceMaxima)-1]
		i1, i2 := indMaxima[len(indMaxima)-2], indMaxima[len(indMaxima)-1]
		if highs[p2] > highs[p1] && ind[i2] < ind[i1] {
			return DivergenceResult{
				Found:       true,
				Bullish:     false,
				Description: fmt.Sprintf("Bearish %s divergence", name),
			}
		}
	}

	return DivergenceResult{Description: "no divergence"}
}

// findPeaks locates local maxima strictly greater than both neighbors, then
// enforces the minimum distance by keeping taller peaks first. Indices are
// returned in ascending order.
func findPeaks(series []float64, distance int) []int {
	var candidates []int
	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] > series[i+1] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	byHeight := make([]int, len(candidates))
	copy(byHeight, candidates)
	sort.SliceStable(byHeight, func(a, b int) bool {
		return series[byHeight[a]] > series[byHeight[b]]
	})

	var kept []int
	for _, idx := range byHeight {
		ok := true
		for _, k := range kept {
			if abs(idx-k) < distance {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, idx)
		}
	}
	sort.Ints(kept)
	return kept
}

func negate(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = -v
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
