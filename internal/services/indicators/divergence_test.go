package indicators

import (
	"testing"

	"CryptoSignalBot/internal/models"
)

func flatCandles(n int, price float64) models.CandleSeries {
	candles := make(models.CandleSeries, n)
	for i := range candles {
		candles[i] = models.Candle{High: price, Low: price, Close: price}
	}
	return candles
}

func flatSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestDivergence(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		res := Divergence(flatCandles(10, 100), flatSeries(10, 50), "RSI", 5)
		if res.Found {
			t.Error("expected no divergence on short input")
		}
		if res.Description != "insufficient data" {
			t.Errorf("unexpected description %q", res.Description)
		}
	})

	t.Run("bullish on lower lows with higher indicator lows", func(t *testing.T) {
		candles := flatCandles(40, 100)
		candles[10].Low = 90
		candles[25].Low = 85
		indicator := flatSeries(40, 50)
		indicator[10] = 30
		indicator[25] = 35

		res := Divergence(candles, indicator, "RSI", 5)
		if !res.Found || !res.Bullish {
			t.Fatalf("expected bullish divergence, got %+v", res)
		}
		if res.Description != "Bullish RSI divergence" {
			t.Errorf("unexpected description %q", res.Description)
		}
	})

	t.Run("bearish on higher highs with lower indicator highs", func(t *testing.T) {
		candles := flatCandles(40, 100)
		candles[10].High = 110
		candles[25].High = 115
		indicator := flatSeries(40, 50)
		indicator[10] = 70
		indicator[25] = 65

		res := Divergence(candles, indicator, "MACD", 5)
		if !res.Found || res.Bullish {
			t.Fatalf("expected bearish divergence, got %+v", res)
		}
		if res.Description != "Bearish MACD divergence" {
			t.Errorf("unexpected description %q", res.Description)
		}
	})

	t.Run("no divergence on flat data", func(t *testing.T) {
		res := Divergence(flatCandles(40, 100), flatSeries(40, 50), "RSI", 5)
		if res.Found {
			t.Errorf("expected no divergence, got %+v", res)
		}
		if res.Description != "no divergence" {
			t.Errorf("unexpected description %q", res.Description)
		}
	})

	t.Run("confirming lows are not a divergence", func(t *testing.T) {
		candles := flatCandles(40, 100)
		candles[10].Low = 90
		candles[25].Low = 85
		indicator := flatSeries(40, 50)
		indicator[10] = 35
		indicator[25] = 30

		res := Divergence(candles, indicator, "RSI", 5)
		if res.Found {
			t.Errorf("expected no divergence, got %+v", res)
		}
	})
}

func TestFindPeaks(t *testing.T) {
	t.Run("strict local maxima only", func(t *testing.T) {
		// Plateau at 5,5 must not count as a peak.
		series := []float64{1, 2, 1, 5, 5, 1, 1, 1, 1, 3, 1}
		peaks := findPeaks(series, 5)
		if len(peaks) != 2 || peaks[0] != 1 || peaks[1] != 9 {
			t.Errorf("unexpected peaks %v", peaks)
		}
	})

	t.Run("distance filter keeps the taller peak", func(t *testing.T) {
		series := []float64{0, 3, 0, 5, 0, 0, 0, 0, 0, 0}
		peaks := findPeaks(series, 5)
		if len(peaks) != 1 || peaks[0] != 3 {
			t.Errorf("expected only the taller peak, got %v", peaks)
		}
	})
}
