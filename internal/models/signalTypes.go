package models

// Signal is the closed set of directional labels shared by the altcoin
// signal generator and the signal combiner.
type Signal string

const (
	SignalHold        Signal = "HOLD"
	SignalWeakLong    Signal = "WEAK_LONG"
	SignalWeakShort   Signal = "WEAK_SHORT"
	SignalStrongLong  Signal = "STRONG_LONG"
	SignalStrongShort Signal = "STRONG_SHORT"
)

// Confidence is the qualitative strength of a signal or context.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Downgrade drops confidence one tier. Low stays low.
func (c Confidence) Downgrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	}
	return ConfidenceLow
}

// Trend is the EMA-cross direction of the primary timeframe.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Regime classifies the market state of one symbol.
type Regime string

const (
	RegimeRange        Regime = "range"
	RegimeOversold     Regime = "oversold"
	RegimeOverbought   Regime = "overbought"
	RegimeAccumulation Regime = "accumulation"
	RegimeDistribution Regime = "distribution"
	RegimeTrending     Regime = "trending"
)

// Volatility buckets ATR% into coarse tiers.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// Vote is a single-timeframe directional vote for one indicator family.
// Oversold/overbought are domain synonyms recognized by the consensus rule.
type Vote string

const (
	VoteBuy        Vote = "buy"
	VoteSell       Vote = "sell"
	VoteHold       Vote = "hold"
	VoteOversold   Vote = "oversold"
	VoteOverbought Vote = "overbought"
)

// ConsensusLabel is the aggregate direction across timeframes.
type ConsensusLabel string

const (
	ConsensusBuy  ConsensusLabel = "BUY"
	ConsensusSell ConsensusLabel = "SELL"
	ConsensusHold ConsensusLabel = "HOLD"
)
