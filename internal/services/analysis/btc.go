package analysis

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/cache"
	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

// Params carries the indicator windows and consensus threshold shared by the
// context builder and the altcoin generator.
type Params struct {
	ZWindow            int
	RSIPeriod          int
	ATRPeriod          int
	EMAShort           int
	EMALong            int
	ConsensusThreshold int
	Timeframes         []string
}

func DefaultParams() Params {
	return Params{
		ZWindow:            20,
		RSIPeriod:          14,
		ATRPeriod:          14,
		EMAShort:           50,
		EMALong:            200,
		ConsensusThreshold: 2,
		Timeframes: []string{
			models.PriceTimeFrame15m,
			models.PriceTimeFrame1h,
			models.PriceTimeFrame4h,
		},
	}
}

func (p Params) snapshotParams() indicators.SnapshotParams {
	return indicators.SnapshotParams{
		ZWindow:   p.ZWindow,
		RSIPeriod: p.RSIPeriod,
		ATRPeriod: p.ATRPeriod,
	}
}

// ContextBuilder turns BTC candle series into the shared market context.
// Results are cached in the injected slot so back-to-back cycles reuse the
// same read.
type ContextBuilder struct {
	params Params
	cache  *cache.Slot[MarketContext]
	log    zerolog.Logger
}

func NewContextBuilder(params Params, slot *cache.Slot[MarketContext], log zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{
		params: params,
		cache:  slot,
		log:    log.With().Str("component", "btc_context").Logger(),
	}
}

// Build computes the BTC market context from per-timeframe candles. Returns
// the cached context while it is fresh, nil when no timeframe has enough
// data.
func (b *ContextBuilder) Build(series map[string]models.CandleSeries) *MarketContext {
	if cached := b.cache.Get(); cached != nil {
		b.log.Debug().Msg("using cached BTC context")
		return cached
	}

	frames := make([]*indicators.TimeframeSnapshot, 0, len(b.params.Timeframes))
	for _, tf := range b.params.Timeframes {
		snap := indicators.Snapshot(tf, series[tf], b.params.snapshotParams())
		if snap == nil {
			b.log.Warn().Str("timeframe", tf).Msg("not enough BTC candles, timeframe skipped")
			continue
		}
		frames = append(frames, snap)
	}
	if len(frames) == 0 {
		b.log.Warn().Msg("no usable BTC timeframes")
		return nil
	}

	consensus := Consolidate(frames, b.params.ConsensusThreshold)
	trend, main := TrendDirection(series, b.params.EMAShort, b.params.EMALong)

	rsiDiv := indicators.DivergenceResult{Description: "no divergence"}
	macdDiv := indicators.DivergenceResult{Description: "no divergence"}
	if len(main) > b.params.RSIPeriod {
		rsiDiv, macdDiv = Divergences(main, b.params.RSIPeriod)
	}

	primary := primaryFrame(frames)
	regime, volatility := indicators.ClassifyRegime(primary.Z, primary.RSI, primary.ATRPct, primary.VolumeZ, trend)

	confScore := math.Abs(primary.Z)
	if math.Abs(primary.RSI-50) > 20 {
		confScore += 1
	}
	if math.Abs(primary.MACDHist) > 0.001 {
		confScore += 0.5
	}
	confidence := models.ConfidenceLow
	if confScore > 3 {
		confidence = models.ConfidenceHigh
	} else if confScore > 1.5 {
		confidence = models.ConfidenceMedium
	}

	score := btcScore(primary, stochLabel4h(frames), trend, rsiDiv, macdDiv)

	ctx := &MarketContext{
		Symbol:         "BTCUSDT",
		Price:          primary.Price,
		Z:              primary.Z,
		RSI:            primary.RSI,
		MACDHist:       primary.MACDHist,
		StochK:         primary.StochK,
		VolumeZ:        primary.VolumeZ,
		ATRPct:         primary.ATRPct,
		Trend:          trend,
		Regime:         regime,
		Volatility:     volatility,
		RSIDivergence:  rsiDiv,
		MACDDivergence: macdDiv,
		Confidence:     confidence,
		Score:          score,
		Frames:         frames,
		Consensus:      consensus,
		CreatedAt:      time.Now(),
	}
	if len(main) > 0 {
		ctx.CloseSeries = main.Closes()
	}

	b.cache.Set(ctx)
	b.log.Info().
		Float64("score", score).
		Str("trend", string(trend)).
		Str("regime", string(regime)).
		Str("confidence", string(confidence)).
		Msg("BTC context built")
	return ctx
}

// primaryFrame prefers the 4h snapshot, falling back to the last computed.
func primaryFrame(frames []*indicators.TimeframeSnapshot) *indicators.TimeframeSnapshot {
	for _, f := range frames {
		if f.Timeframe == models.PriceTimeFrame4h {
			return f
		}
	}
	return frames[len(frames)-1]
}

func stochLabel4h(frames []*indicators.TimeframeSnapshot) models.Vote {
	for _, f := range frames {
		if f.Timeframe == models.PriceTimeFrame4h {
			return f.StochLabel
		}
	}
	return models.VoteHold
}

// btcScore sums the weighted indicator terms of the primary frame.
func btcScore(primary *indicators.TimeframeSnapshot, stoch4h models.Vote, trend models.Trend, rsiDiv, macdDiv indicators.DivergenceResult) float64 {
	score := 0.0
	switch {
	case primary.Z < -2.0:
		score += 2
	case primary.Z > 2.0:
		score -= 2
	}
	switch {
	case primary.RSI < 30:
		score += 2
	case primary.RSI > 70:
		score -= 2
	}
	switch {
	case primary.MACDHist > 0:
		score += 1
	case primary.MACDHist < 0:
		score -= 1
	}
	switch stoch4h {
	case models.VoteBuy:
		score += 1
	case models.VoteSell:
		score -= 1
	}
	switch {
	case primary.VolumeZ > 1.0:
		score += 1
	case primary.VolumeZ < -1.0:
		score -= 1
	}
	switch trend {
	case models.TrendUp:
		score += 2
	case models.TrendDown:
		score -= 2
	}
	if rsiDiv.Found {
		if rsiDiv.Bullish {
			score += 2
		} else {
			score -= 2
		}
	}
	if macdDiv.Found {
		if macdDiv.Bullish {
			score += 2
		} else {
			score -= 2
		}
	}
	return score
}
