package analysis

import (
	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

// ConsensusResult is the cross-timeframe agreement for one indicator family.
type ConsensusResult struct {
	Label models.ConsensusLabel
	Count int
}

// Indicator family keys of the consolidated consensus map.
const (
	FamilyZ      = "z"
	FamilyRSI    = "rsi"
	FamilyMACD   = "macd"
	FamilyStoch  = "stoch"
	FamilyVolume = "volume"
)

// ConsensusVotes tallies directional votes across timeframes. A direction
// wins when at least threshold timeframes agree; otherwise HOLD with count 0.
// Oversold counts as buy, overbought as sell.
func ConsensusVotes(votes []models.Vote, threshold int) ConsensusResult {
	if len(votes) == 0 {
		return ConsensusResult{Label: models.ConsensusHold}
	}
	buy, sell := 0, 0
	for _, v := range votes {
		switch v {
		case models.VoteBuy, models.VoteOversold:
			buy++
		case models.VoteSell, models.VoteOverbought:
			sell++
		}
	}
	switch {
	case buy >= threshold:
		return ConsensusResult{Label: models.ConsensusBuy, Count: buy}
	case sell >= threshold:
		return ConsensusResult{Label: models.ConsensusSell, Count: sell}
	default:
		return ConsensusResult{Label: models.ConsensusHold}
	}
}

// reversionVote reads an extreme below -limit as a buy and above +limit as a
// sell, the mean-reversion convention for Z-scores.
func reversionVote(v, limit float64) models.Vote {
	switch {
	case v < -limit:
		return models.VoteBuy
	case v > limit:
		return models.VoteSell
	default:
		return models.VoteHold
	}
}

// momentumVote reads a value above +limit as a buy and below -limit as a
// sell, the trend-following convention for MACD and volume.
func momentumVote(v, limit float64) models.Vote {
	switch {
	case v > limit:
		return models.VoteBuy
	case v < -limit:
		return models.VoteSell
	default:
		return models.VoteHold
	}
}

// Consolidate computes the per-family consensus across timeframe snapshots.
// Z-scores vote at +/-1.5, MACD by histogram sign, volume Z at +/-0.5; RSI
// and StochRSI carry their own labels.
func Consolidate(frames []*indicators.TimeframeSnapshot, threshold int) map[string]ConsensusResult {
	zVotes := make([]models.Vote, 0, len(frames))
	rsiVotes := make([]models.Vote, 0, len(frames))
	macdVotes := make([]models.Vote, 0, len(frames))
	stochVotes := make([]models.Vote, 0, len(frames))
	volVotes := make([]models.Vote, 0, len(frames))
	for _, f := range frames {
		zVotes = append(zVotes, reversionVote(f.Z, 1.5))
		rsiVotes = append(rsiVotes, f.RSILabel)
		macdVotes = append(macdVotes, momentumVote(f.MACDHist, 0))
		stochVotes = append(stochVotes, f.StochLabel)
		volVotes = append(volVotes, momentumVote(f.VolumeZ, 0.5))
	}
	return map[string]ConsensusResult{
		FamilyZ:      ConsensusVotes(zVotes, threshold),
		FamilyRSI:    ConsensusVotes(rsiVotes, threshold),
		FamilyMACD:   ConsensusVotes(macdVotes, threshold),
		FamilyStoch:  ConsensusVotes(stochVotes, threshold),
		FamilyVolume: ConsensusVotes(volVotes, threshold),
	}
}
