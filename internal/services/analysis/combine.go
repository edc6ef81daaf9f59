package analysis

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

// consensusWeight is how much the BTC cross-timeframe consensus contributes
// to the blended BTC confidence.
const consensusWeight = 0.3

// Combiner blends the altcoin signal with the BTC context, letting the
// altcoin dominate when the pair has decoupled from BTC.
type Combiner struct {
	log zerolog.Logger
}

func NewCombiner(log zerolog.Logger) *Combiner {
	return &Combiner{log: log.With().Str("component", "combiner").Logger()}
}

// Combine produces the final verdict for one altcoin. Returns nil when
// either input is missing.
func (c *Combiner) Combine(btc *MarketContext, alt *AltcoinSignal) *CombinedSignal {
	if btc == nil || alt == nil {
		return nil
	}

	baseWeight := 0.7
	if btc.Regime == models.RegimeRange || btc.Trend == models.TrendNeutral {
		baseWeight = 0.5
	}

	// Fold the cross-timeframe consensus into BTC confidence.
	strength, families := 0.0, 0
	for _, res := range btc.Consensus {
		families++
		switch res.Label {
		case models.ConsensusBuy:
			strength++
		case models.ConsensusSell:
			strength--
		}
	}
	normalized := 0.0
	if families > 0 {
		normalized = strength / float64(families)
	}

	baseScore := 0.25
	switch btc.Confidence {
	case models.ConfidenceHigh:
		baseScore = 1.0
	case models.ConfidenceMedium:
		baseScore = 0.5
	}
	blended := baseScore*(1-consensusWeight) + ((normalized+1)/2)*consensusWeight

	btcConfidence := models.ConfidenceLow
	if blended > 0.75 {
		btcConfidence = models.ConfidenceHigh
	} else if blended > 0.4 {
		btcConfidence = models.ConfidenceMedium
	}

	factor := 1.0
	if btcConfidence == models.ConfidenceLow {
		factor = 0.5
	}
	btcWeight := baseWeight * factor
	altWeight := 1 - btcWeight

	corr := indicators.Correlation(alt.CloseSeries, btc.CloseSeries, correlationWindow)
	isDivergent := math.Abs(corr) < 0.5
	if isDivergent {
		btcWeight = 0.3
		altWeight = 0.7
	}

	var finalScore float64
	var reason string
	if isDivergent && alt.Score > 4 && (math.Abs(btc.Score) <= 4 || btcConfidence != models.ConfidenceHigh) {
		finalScore = alt.Score * 1.3
		reason = fmt.Sprintf("decoupled from BTC: %s (correlation %.2f)", alt.Signal, corr)
	} else {
		finalScore = btc.Score*btcWeight + alt.Score*altWeight
		reason = fmt.Sprintf("BTC context (%.2f, conf %s) + altcoin signal (%.2f)", btcWeight, btcConfidence, altWeight)
	}

	rr := alt.RewardRisk
	potentialLong := finalScore > 5
	potentialShort := finalScore < -5

	// R/R acts as both filter and amplifier.
	switch {
	case rr < 0.5:
		if finalScore > 0 {
			finalScore = math.Min(finalScore, 0)
		} else {
			finalScore = math.Max(finalScore, 0)
		}
		reason += " | R/R < 0.5 (suppressed)"
	case rr > 1.5:
		finalScore *= 1.1
		reason += " | R/R > 1.5 (amplified)"
	}

	signal := models.SignalHold
	confidence := models.ConfidenceLow
	switch {
	case potentialLong && rr >= 0.8:
		signal = models.SignalWeakLong
		if rr >= 1.2 {
			signal = models.SignalStrongLong
		}
		confidence = models.ConfidenceMedium
		if finalScore > 7 {
			confidence = models.ConfidenceHigh
		}
	case potentialShort && rr >= 0.8:
		signal = models.SignalWeakShort
		if rr >= 1.2 {
			signal = models.SignalStrongShort
		}
		confidence = models.ConfidenceMedium
		if finalScore < -7 {
			confidence = models.ConfidenceHigh
		}
	case math.Abs(finalScore) > 3 && rr >= 1.0:
		signal = models.SignalWeakLong
		if finalScore < 0 {
			signal = models.SignalWeakShort
		}
		confidence = models.ConfidenceMedium
	}

	c.log.Debug().
		Str("symbol", alt.Symbol).
		Str("signal", string(signal)).
		Float64("score", finalScore).
		Float64("correlation", corr).
		Bool("divergent", isDivergent).
		Msg("signals combined")

	return &CombinedSignal{
		FinalSignal:       signal,
		Reason:            reason,
		Confidence:        confidence,
		Score:             finalScore,
		Correlation:       corr,
		IsDivergent:       isDivergent,
		BTCWeight:         btcWeight,
		AltWeight:         altWeight,
		BTCConfidenceUsed: btcConfidence,
	}
}
