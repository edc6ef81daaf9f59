package indicators

import (
	"math"

	"CryptoSignalBot/internal/models"
)

// VolatilityBucket tiers ATR% for per-timeframe snapshots.
func VolatilityBucket(atrPct float64) models.Volatility {
	switch {
	case atrPct > 5.0:
		return models.VolatilityHigh
	case atrPct > 2.0:
		return models.VolatilityMedium
	default:
		return models.VolatilityLow
	}
}

// ClassifyRegime labels the market state from the primary-timeframe Z-score,
// RSI, ATR%, volume Z-score and trend. Rules are checked in priority order,
// range first, trending as the fallback.
func ClassifyRegime(z, rsi, atrPct, volumeZ float64, trend models.Trend) (models.Regime, models.Volatility) {
	var volatility models.Volatility
	switch {
	case atrPct < 1.5:
		volatility = models.VolatilityLow
	case atrPct < 3.0:
		volatility = models.VolatilityMedium
	default:
		volatility = models.VolatilityHigh
	}

	var regime models.Regime
	switch {
	case math.Abs(z) < 1.0 && rsi > 40 && rsi < 60:
		regime = models.RegimeRange
	case z < -2.0 && rsi < 30 && trend == models.TrendUp:
		regime = models.RegimeOversold
	case z > 2.0 && rsi > 70 && trend == models.TrendDown:
		regime = models.RegimeOverbought
	case z < -1.0 && volumeZ > 1.0:
		regime = models.RegimeAccumulation
	case z > 1.0 && volumeZ < -1.0:
		regime = models.RegimeDistribution
	default:
		regime = models.RegimeTrending
	}
	return regime, volatility
}
