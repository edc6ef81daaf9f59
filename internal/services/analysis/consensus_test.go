package analysis

import (
	"testing"

	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

func TestConsensusVotes(t *testing.T) {
	cases := []struct {
		name      string
		votes     []models.Vote
		threshold int
		want      ConsensusResult
	}{
		{"two buys win", []models.Vote{models.VoteBuy, models.VoteBuy, models.VoteHold}, 2, ConsensusResult{models.ConsensusBuy, 2}},
		{"oversold counts as buy", []models.Vote{models.VoteOversold, models.VoteBuy}, 2, ConsensusResult{models.ConsensusBuy, 2}},
		{"overbought counts as sell", []models.Vote{models.VoteOverbought, models.VoteSell, models.VoteHold}, 2, ConsensusResult{models.ConsensusSell, 2}},
		{"split is hold with zero count", []models.Vote{models.VoteBuy, models.VoteSell, models.VoteHold}, 2, ConsensusResult{models.ConsensusHold, 0}},
		{"empty is hold", nil, 2, ConsensusResult{models.ConsensusHold, 0}},
		{"threshold not met", []models.Vote{models.VoteBuy, models.VoteHold, models.VoteHold}, 2, ConsensusResult{models.ConsensusHold, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConsensusVotes(tc.votes, tc.threshold); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestConsolidate(t *testing.T) {
	frame := func(z, hist, volZ float64, rsi, stoch models.Vote) *indicators.TimeframeSnapshot {
		return &indicators.TimeframeSnapshot{Z: z, MACDHist: hist, VolumeZ: volZ, RSILabel: rsi, StochLabel: stoch}
	}
	frames := []*indicators.TimeframeSnapshot{
		frame(-2.0, 1.0, 1.0, models.VoteBuy, models.VoteHold),
		frame(-1.8, 0.5, 0.7, models.VoteBuy, models.VoteSell),
		frame(-0.5, -0.2, 0.1, models.VoteHold, models.VoteHold),
	}

	res := Consolidate(frames, 2)

	if got := res[FamilyZ]; got.Label != models.ConsensusBuy || got.Count != 2 {
		t.Errorf("z consensus = %+v", got)
	}
	if got := res[FamilyRSI]; got.Label != models.ConsensusBuy || got.Count != 2 {
		t.Errorf("rsi consensus = %+v", got)
	}
	if got := res[FamilyMACD]; got.Label != models.ConsensusBuy || got.Count != 2 {
		t.Errorf("macd consensus = %+v", got)
	}
	if got := res[FamilyStoch]; got.Label != models.ConsensusHold || got.Count != 0 {
		t.Errorf("stoch consensus = %+v", got)
	}
	if got := res[FamilyVolume]; got.Label != models.ConsensusBuy || got.Count != 2 {
		t.Errorf("volume consensus = %+v", got)
	}
}
