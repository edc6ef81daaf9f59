package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/cache"
	"CryptoSignalBot/internal/models"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", label, got, want, tol)
	}
}

// trendingCandles produces a steadily rising series with a constant volume.
func trendingCandles(n int) models.CandleSeries {
	candles := make(models.CandleSeries, n)
	for i := range candles {
		c := 100.0 + float64(i)
		candles[i] = models.Candle{
			OpenTime: time.Unix(int64(i)*900, 0),
			Open:     c - 0.5,
			High:     c + 0.5,
			Low:      c - 0.5,
			Close:    c,
			Volume:   1000,
		}
	}
	return candles
}

func trendingSeries(n int) map[string]models.CandleSeries {
	return map[string]models.CandleSeries{
		models.PriceTimeFrame15m: trendingCandles(n),
		models.PriceTimeFrame1h:  trendingCandles(n),
		models.PriceTimeFrame4h:  trendingCandles(n),
	}
}

func TestContextBuilderBuild(t *testing.T) {
	slot := cache.NewSlot[MarketContext](time.Minute)
	builder := NewContextBuilder(DefaultParams(), slot, zerolog.Nop())

	ctx := builder.Build(trendingSeries(250))
	if ctx == nil {
		t.Fatal("expected context")
	}

	if ctx.Trend != models.TrendUp {
		t.Errorf("trend = %v, want up", ctx.Trend)
	}
	if ctx.Regime != models.RegimeTrending {
		t.Errorf("regime = %v, want trending", ctx.Regime)
	}
	// A steady rise scores: overheated RSI -2, positive MACD +1, uptrend +2.
	assertClose(t, "score", ctx.Score, 1, 1e-9)
	if ctx.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence = %v, want high", ctx.Confidence)
	}
	if len(ctx.Frames) != 3 {
		t.Errorf("frames = %d, want 3", len(ctx.Frames))
	}
	if len(ctx.CloseSeries) != 250 {
		t.Errorf("close series length = %d, want 250", len(ctx.CloseSeries))
	}
	if _, ok := ctx.Consensus[FamilyMACD]; !ok {
		t.Error("missing MACD consensus")
	}

	// Linear rise, trailing window of 20: z = 9.5/sqrt(35).
	assertClose(t, "z", ctx.Z, 9.5/math.Sqrt(35), 1e-6)
}

func TestContextBuilderCache(t *testing.T) {
	slot := cache.NewSlot[MarketContext](time.Minute)
	builder := NewContextBuilder(DefaultParams(), slot, zerolog.Nop())

	first := builder.Build(trendingSeries(250))
	if first == nil {
		t.Fatal("expected context")
	}
	// Second call must come from the cache, even with no input data.
	second := builder.Build(nil)
	if second != first {
		t.Error("expected cached context to be reused")
	}
}

func TestContextBuilderNoData(t *testing.T) {
	slot := cache.NewSlot[MarketContext](time.Minute)
	builder := NewContextBuilder(DefaultParams(), slot, zerolog.Nop())

	if ctx := builder.Build(nil); ctx != nil {
		t.Errorf("expected nil context, got %+v", ctx)
	}
	if ctx := builder.Build(map[string]models.CandleSeries{
		models.PriceTimeFrame4h: trendingCandles(5),
	}); ctx != nil {
		t.Errorf("expected nil context on short data, got %+v", ctx)
	}
}

func TestPrimaryFrameFallback(t *testing.T) {
	slot := cache.NewSlot[MarketContext](time.Minute)
	builder := NewContextBuilder(DefaultParams(), slot, zerolog.Nop())

	// Without 4h data the last computed timeframe becomes primary.
	ctx := builder.Build(map[string]models.CandleSeries{
		models.PriceTimeFrame15m: trendingCandles(250),
		models.PriceTimeFrame1h:  trendingCandles(250),
	})
	if ctx == nil {
		t.Fatal("expected context")
	}
	if len(ctx.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(ctx.Frames))
	}
	assertClose(t, "price", ctx.Price, 349, 1e-12)
}
