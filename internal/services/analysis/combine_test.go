package analysis

import (
	"testing"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/models"
)

func holdConsensus() map[string]ConsensusResult {
	return map[string]ConsensusResult{
		FamilyZ:      {Label: models.ConsensusHold},
		FamilyRSI:    {Label: models.ConsensusHold},
		FamilyMACD:   {Label: models.ConsensusHold},
		FamilyStoch:  {Label: models.ConsensusHold},
		FamilyVolume: {Label: models.ConsensusHold},
	}
}

func alternatingSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100
		if i%2 == 1 {
			out[i] = 101
		}
	}
	return out
}

func monotonicSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestCombineNilInputs(t *testing.T) {
	c := NewCombiner(zerolog.Nop())
	if got := c.Combine(nil, &AltcoinSignal{}); got != nil {
		t.Error("expected nil without BTC context")
	}
	if got := c.Combine(&MarketContext{}, nil); got != nil {
		t.Error("expected nil without altcoin signal")
	}
}

func TestCombineDivergentBoost(t *testing.T) {
	c := NewCombiner(zerolog.Nop())
	btc := &MarketContext{
		Score:       1,
		Confidence:  models.ConfidenceMedium,
		Regime:      models.RegimeTrending,
		Trend:       models.TrendUp,
		Consensus:   holdConsensus(),
		CloseSeries: monotonicSeries(30),
	}
	alt := &AltcoinSignal{
		Symbol:      "ETHUSDT",
		Signal:      models.SignalWeakLong,
		Score:       5,
		RewardRisk:  1.3,
		CloseSeries: alternatingSeries(30),
	}

	got := c.Combine(btc, alt)
	if got == nil {
		t.Fatal("expected combined signal")
	}
	if !got.IsDivergent {
		t.Fatalf("expected divergent pair, correlation %v", got.Correlation)
	}
	assertClose(t, "btc weight", got.BTCWeight, 0.3, 1e-12)
	assertClose(t, "alt weight", got.AltWeight, 0.7, 1e-12)
	// Decoupled altcoin with a usable R/R gets the 1.3x boost.
	assertClose(t, "score", got.Score, 6.5, 1e-9)
	if got.FinalSignal != models.SignalStrongLong {
		t.Errorf("signal = %v, want STRONG_LONG", got.FinalSignal)
	}
	if got.Confidence != models.ConfidenceMedium {
		t.Errorf("confidence = %v, want medium", got.Confidence)
	}
	if got.BTCConfidenceUsed != models.ConfidenceMedium {
		t.Errorf("btc confidence = %v, want medium", got.BTCConfidenceUsed)
	}
}

func TestCombineRewardRiskClamp(t *testing.T) {
	c := NewCombiner(zerolog.Nop())
	btc := &MarketContext{
		Score:       1,
		Confidence:  models.ConfidenceMedium,
		Regime:      models.RegimeTrending,
		Trend:       models.TrendUp,
		Consensus:   holdConsensus(),
		CloseSeries: monotonicSeries(30),
	}
	alt := &AltcoinSignal{
		Symbol:      "ETHUSDT",
		Score:       5,
		RewardRisk:  0.3,
		CloseSeries: alternatingSeries(30),
	}

	got := c.Combine(btc, alt)
	if got == nil {
		t.Fatal("expected combined signal")
	}
	// A poor R/R suppresses the score and the signal with it.
	assertClose(t, "score", got.Score, 0, 1e-12)
	if got.FinalSignal != models.SignalHold {
		t.Errorf("signal = %v, want HOLD", got.FinalSignal)
	}
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %v, want low", got.Confidence)
	}
}

func TestCombineWeightTransitions(t *testing.T) {
	c := NewCombiner(zerolog.Nop())

	t.Run("range regime with low confidence halves the BTC weight", func(t *testing.T) {
		btc := &MarketContext{
			Score:       2,
			Confidence:  models.ConfidenceLow,
			Regime:      models.RegimeRange,
			Trend:       models.TrendUp,
			Consensus:   holdConsensus(),
			CloseSeries: monotonicSeries(30),
		}
		alt := &AltcoinSignal{
			Symbol:      "ETHUSDT",
			Score:       0,
			RewardRisk:  1.0,
			CloseSeries: monotonicSeries(30),
		}

		got := c.Combine(btc, alt)
		if got == nil {
			t.Fatal("expected combined signal")
		}
		if got.IsDivergent {
			t.Errorf("identical series should correlate, got %v", got.Correlation)
		}
		// Range regime drops the base to 0.5, low confidence halves it.
		assertClose(t, "btc weight", got.BTCWeight, 0.25, 1e-9)
		assertClose(t, "alt weight", got.AltWeight, 0.75, 1e-9)
		assertClose(t, "score", got.Score, 0.5, 1e-9)
		if got.FinalSignal != models.SignalHold {
			t.Errorf("signal = %v, want HOLD", got.FinalSignal)
		}
	})

	t.Run("strong consensus can lift low base confidence", func(t *testing.T) {
		consensus := map[string]ConsensusResult{
			FamilyZ:      {Label: models.ConsensusBuy, Count: 3},
			FamilyRSI:    {Label: models.ConsensusBuy, Count: 3},
			FamilyMACD:   {Label: models.ConsensusBuy, Count: 3},
			FamilyStoch:  {Label: models.ConsensusBuy, Count: 3},
			FamilyVolume: {Label: models.ConsensusBuy, Count: 3},
		}
		btc := &MarketContext{
			Score:       2,
			Confidence:  models.ConfidenceLow,
			Regime:      models.RegimeTrending,
			Trend:       models.TrendUp,
			Consensus:   consensus,
			CloseSeries: monotonicSeries(30),
		}
		alt := &AltcoinSignal{
			Symbol:      "ETHUSDT",
			Score:       0,
			RewardRisk:  1.0,
			CloseSeries: monotonicSeries(30),
		}

		got := c.Combine(btc, alt)
		if got == nil {
			t.Fatal("expected combined signal")
		}
		// 0.25*0.7 + 1.0*0.3 = 0.475, enough for medium.
		if got.BTCConfidenceUsed != models.ConfidenceMedium {
			t.Errorf("btc confidence = %v, want medium", got.BTCConfidenceUsed)
		}
		assertClose(t, "btc weight", got.BTCWeight, 0.7, 1e-9)
	})
}
