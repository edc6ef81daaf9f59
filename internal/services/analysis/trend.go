package analysis

import (
	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

// trendFrameOrder prefers the slowest timeframe as the trend anchor.
var trendFrameOrder = []string{
	models.PriceTimeFrame4h,
	models.PriceTimeFrame1h,
	models.PriceTimeFrame15m,
}

// divergencePeriods is the extrema spacing passed to the divergence scan.
const divergencePeriods = 5

// minDivergenceCandles guards the RSI/MACD series construction.
const minDivergenceCandles = 20

// TrendDirection picks the first populated timeframe in slow-to-fast order
// and compares its short and long EMAs. Series shorter than
// max(emaShort, 10) stay neutral. The chosen series is returned so callers
// can reuse it for divergences and correlation.
func TrendDirection(series map[string]models.CandleSeries, emaShort, emaLong int) (models.Trend, models.CandleSeries) {
	var main models.CandleSeries
	for _, tf := range trendFrameOrder {
		if s, ok := series[tf]; ok && len(s) > 0 {
			main = s
			break
		}
	}
	minLen := emaShort
	if minLen < 10 {
		minLen = 10
	}
	if len(main) < minLen {
		return models.TrendNeutral, main
	}
	closes := main.Closes()
	short := indicators.EMA(closes, emaShort)
	long := indicators.EMA(closes, emaLong)
	switch {
	case short > long:
		return models.TrendUp, main
	case short < long:
		return models.TrendDown, main
	default:
		return models.TrendNeutral, main
	}
}

// Divergences scans the trend timeframe for RSI and MACD-histogram
// divergences against price extrema.
func Divergences(main models.CandleSeries, rsiPeriod int) (rsiDiv, macdDiv indicators.DivergenceResult) {
	rsiDiv = indicators.DivergenceResult{Description: "insufficient data"}
	macdDiv = indicators.DivergenceResult{Description: "insufficient data"}
	if len(main) < minDivergenceCandles {
		return rsiDiv, macdDiv
	}
	closes := main.Closes()
	rsiSeries := indicators.RSISeries(closes, rsiPeriod)
	histSeries := indicators.MACDHistSeries(closes, indicators.MACDFast, indicators.MACDSlow, indicators.MACDSignal)
	rsiDiv = indicators.Divergence(main, rsiSeries, "RSI", divergencePeriods)
	macdDiv = indicators.Divergence(main, histSeries, "MACD", divergencePeriods)
	return rsiDiv, macdDiv
}
