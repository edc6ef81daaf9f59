package indicators

import (
	"CryptoSignalBot/internal/models"
)

// MinSnapshotCandles is the floor below which a timeframe is dropped.
const MinSnapshotCandles = 10

// SnapshotParams carries the tunable indicator windows.
type SnapshotParams struct {
	ZWindow   int
	RSIPeriod int
	ATRPeriod int
}

// TimeframeSnapshot is the full indicator readout for one (symbol, timeframe).
type TimeframeSnapshot struct {
	Timeframe  string
	Price      float64
	Z          float64
	RSI        float64
	MACDHist   float64
	StochK     float64
	StochD     float64
	VolumeZ    float64
	ATRPct     float64
	Volatility models.Volatility

	// Coarse per-indicator votes feeding the consensus step.
	RSILabel   models.Vote
	MACDLabel  models.Vote
	StochLabel models.Vote
}

// Snapshot computes every indicator for one timeframe. Returns nil when the
// series is too short to say anything useful.
func Snapshot(timeframe string, candles models.CandleSeries, p SnapshotParams) *TimeframeSnapshot {
	if len(candles) < MinSnapshotCandles {
		return nil
	}
	closes := candles.Closes()
	volumes := candles.Volumes()

	z := ZScore(closes, p.ZWindow)
	rsi := RSI(closes, p.RSIPeriod)
	macd := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	stoch := StochRSI(closes, p.RSIPeriod, 3, 3)
	volZ := ZScore(volumes, p.ZWindow)
	atrPct := ATRPercent(candles, p.ATRPeriod)

	return &TimeframeSnapshot{
		Timeframe:  timeframe,
		Price:      candles.LastClose(),
		Z:          z.Z,
		RSI:        rsi,
		MACDHist:   macd.Histogram,
		StochK:     stoch.K,
		StochD:     stoch.D,
		VolumeZ:    volZ.Z,
		ATRPct:     atrPct,
		Volatility: VolatilityBucket(atrPct),
		RSILabel:   rsiVote(rsi),
		MACDLabel:  macdVote(macd.Histogram),
		StochLabel: stochVote(stoch.K, stoch.D),
	}
}

func rsiVote(rsi float64) models.Vote {
	switch {
	case rsi < 30:
		return models.VoteBuy
	case rsi > 70:
		return models.VoteSell
	default:
		return models.VoteHold
	}
}

func macdVote(hist float64) models.Vote {
	switch {
	case hist > 0:
		return models.VoteBuy
	case hist < 0:
		return models.VoteSell
	default:
		return models.VoteHold
	}
}

// Stochastic votes fire only in the extreme bands and only when the K line
// is crossing back through D.
func stochVote(k, d float64) models.Vote {
	switch {
	case k < 0.2 && k > d:
		return models.VoteBuy
	case k > 0.8 && k < d:
		return models.VoteSell
	default:
		return models.VoteHold
	}
}
