package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
	"CryptoSignalBot/internal/services/orderbook"
)

// Altcoin scoring thresholds.
const (
	strongScore = 6.0
	weakScore   = 4.0
)

// correlationWindow is the trailing window for the alt/BTC close correlation.
const correlationWindow = 30

// AltcoinInput bundles everything a worker fetched for one symbol.
type AltcoinInput struct {
	Symbol    string
	Series    map[string]models.CandleSeries
	Book      *models.OrderBook
	IsLiquid  bool
	Liquidity models.LiquidityInfo
}

// SignalGenerator scores one altcoin against its own indicators, the order
// book and the BTC context.
type SignalGenerator struct {
	params Params
	log    zerolog.Logger
}

func NewSignalGenerator(params Params, log zerolog.Logger) *SignalGenerator {
	return &SignalGenerator{
		params: params,
		log:    log.With().Str("component", "alt_signal").Logger(),
	}
}

// Build runs the weighted scoring for one altcoin. Returns nil when no
// timeframe had enough candles.
func (g *SignalGenerator) Build(in AltcoinInput, btc *MarketContext) *AltcoinSignal {
	log := g.log.With().Str("symbol", in.Symbol).Logger()

	frames := make([]*indicators.TimeframeSnapshot, 0, len(g.params.Timeframes))
	for _, tf := range g.params.Timeframes {
		snap := indicators.Snapshot(tf, in.Series[tf], g.params.snapshotParams())
		if snap == nil {
			continue
		}
		frames = append(frames, snap)
	}
	if len(frames) == 0 {
		log.Warn().Msg("no usable timeframes")
		return nil
	}

	trend, main := TrendDirection(in.Series, g.params.EMAShort, g.params.EMALong)

	rsiDiv := indicators.DivergenceResult{Description: "no divergence"}
	macdDiv := indicators.DivergenceResult{Description: "no divergence"}
	if len(main) > g.params.RSIPeriod {
		rsiDiv, macdDiv = Divergences(main, g.params.RSIPeriod)
	}

	primary := primaryFrame(frames)
	price := primary.Price
	regime, volatility := indicators.ClassifyRegime(primary.Z, primary.RSI, primary.ATRPct, primary.VolumeZ, trend)

	// Mean-reversion potential against a 1.5 ATR stop.
	meanReversionPct := 0.0
	if primary.Z != 0 {
		meanReversionPct = math.Abs(primary.Z * primary.ATRPct)
	}
	riskPct := primary.ATRPct * 1.5
	rr := 0.0
	if riskPct > 0 {
		rr = meanReversionPct / riskPct
	}

	hasCorr, corr, btcDiv := btcCorrelation(btc, main)

	ob := in.Liquidity.Density
	if ob == nil && in.Book != nil && price > 0 {
		d := orderbook.Density(*in.Book, price, 0)
		d.PriceImpact = orderbook.PriceImpact(*in.Book, orderbook.DefaultReferenceQuote, orderbook.SideBuy)
		ob = &d
	}

	score := 0.0
	var reasons []string
	add := func(delta float64, reason string) {
		score += delta
		reasons = append(reasons, reason)
	}

	switch {
	case primary.Z < -2.0:
		add(2, fmt.Sprintf("Z-score oversold (%.2f)", primary.Z))
	case primary.Z > 2.0:
		add(-2, fmt.Sprintf("Z-score overbought (%.2f)", primary.Z))
	}
	switch {
	case primary.RSI < 30:
		add(2, fmt.Sprintf("RSI oversold (%.1f)", primary.RSI))
	case primary.RSI > 70:
		add(-2, fmt.Sprintf("RSI overbought (%.1f)", primary.RSI))
	}
	switch {
	case primary.MACDHist > 0:
		add(1, "MACD histogram positive")
	case primary.MACDHist < 0:
		add(-1, "MACD histogram negative")
	}
	switch {
	case primary.StochK < 0.2:
		add(1, fmt.Sprintf("StochRSI oversold (%.2f)", primary.StochK))
	case primary.StochK > 0.8:
		add(-1, fmt.Sprintf("StochRSI overbought (%.2f)", primary.StochK))
	}
	switch {
	case primary.VolumeZ > 1.0:
		add(1, fmt.Sprintf("high volume (Z=%.1f)", primary.VolumeZ))
	case primary.VolumeZ < -1.0:
		add(-1, fmt.Sprintf("low volume (Z=%.1f)", primary.VolumeZ))
	}
	switch trend {
	case models.TrendUp:
		add(2, "uptrend")
	case models.TrendDown:
		add(-2, "downtrend")
	}

	// Divergences weigh more when BTC itself has no strong opinion.
	divWeight := 3.0
	if btc != nil && math.Abs(btc.Score) <= 2 {
		divWeight = 4.0
	}
	if rsiDiv.Found {
		if rsiDiv.Bullish {
			add(divWeight, rsiDiv.Description)
		} else {
			add(-divWeight, rsiDiv.Description)
		}
	}
	if macdDiv.Found {
		if macdDiv.Bullish {
			add(divWeight, macdDiv.Description)
		} else {
			add(-divWeight, macdDiv.Description)
		}
	}

	if hasCorr {
		switch {
		case corr > 0.8:
			add(1, fmt.Sprintf("high BTC correlation (%.2f)", corr))
		case corr < -0.5:
			add(-1, fmt.Sprintf("negative BTC correlation (%.2f)", corr))
		}
		if btcDiv.Found {
			add(2, fmt.Sprintf("divergence from BTC: %s", btcDiv.Description))
		}
	}

	if ob != nil && ob.DensityScore > 0 {
		ref := ob.CurrentPrice
		if ref == 0 {
			ref = price
		}
		switch {
		case ob.NearestBid > 0 && math.Abs(ref-ob.NearestBid)/ref < 0.005:
			add(2, fmt.Sprintf("support at %.8f", ob.NearestBid))
		case ob.NearestAsk > 0 && math.Abs(ob.NearestAsk-ref)/ref < 0.005:
			add(-2, fmt.Sprintf("resistance at %.8f", ob.NearestAsk))
		case ob.DensityScore > 100:
			add(1, "dense order book near price")
		}
	}

	baseConfidence := models.ConfidenceLow
	if score >= strongScore || score <= -strongScore {
		baseConfidence = models.ConfidenceHigh
	} else if score >= weakScore || score <= -weakScore {
		baseConfidence = models.ConfidenceMedium
	}

	stressed := ob.Stressed()
	finalConfidence := baseConfidence
	if !in.IsLiquid {
		finalConfidence = finalConfidence.Downgrade()
	}
	if stressed {
		finalConfidence = finalConfidence.Downgrade()
	}

	adjustedRR := rr
	if !in.IsLiquid || stressed {
		adjustedRR *= 0.8
	}

	sig := &AltcoinSignal{
		Symbol:         in.Symbol,
		Signal:         models.SignalHold,
		Reason:         "no confirmed signal",
		Reasons:        reasons,
		Confidence:     models.ConfidenceLow,
		Regime:         regime,
		Volatility:     volatility,
		Trend:          trend,
		Score:          score,
		RewardRisk:     adjustedRR,
		Price:          price,
		BTCCorrelation: corr,
		BTCDivergence:  btcDiv,
		IsLiquid:       in.IsLiquid,
		Liquidity:      in.Liquidity,
	}
	if len(main) > 0 {
		sig.CloseSeries = main.Closes()
	}

	switch {
	case score >= strongScore:
		sig.Signal = models.SignalStrongLong
		sig.Confidence = finalConfidence
		sig.Reason = fmt.Sprintf("strong buy (score %.0f) | %s", score, lastReasons(reasons, 3))
		sig.Target = price * (1 + meanReversionPct/100)
		sig.Stop = price * (1 - riskPct/100)
		sig.Entry = "limit order near current price"
	case score <= -strongScore:
		sig.Signal = models.SignalStrongShort
		sig.Confidence = finalConfidence
		sig.Reason = fmt.Sprintf("strong sell (score %.0f) | %s", score, lastReasons(reasons, 3))
		sig.Target = price * (1 - meanReversionPct/100)
		sig.Stop = price * (1 + riskPct/100)
		sig.Entry = "limit order on the pullback"
	case score >= weakScore:
		sig.Signal = models.SignalWeakLong
		sig.Confidence = finalConfidence
		sig.Reason = fmt.Sprintf("weak buy (score %.0f) | %s", score, lastReasons(reasons, 2))
		sig.Target = price * (1 + meanReversionPct/200)
		sig.Stop = price * (1 - riskPct/200)
		sig.Entry = "enter on confirmation"
	case score <= -weakScore:
		sig.Signal = models.SignalWeakShort
		sig.Confidence = finalConfidence
		sig.Reason = fmt.Sprintf("weak sell (score %.0f) | %s", score, lastReasons(reasons, 2))
		sig.Target = price * (1 - meanReversionPct/200)
		sig.Stop = price * (1 + riskPct/200)
		sig.Entry = "enter on confirmation"
	}

	log.Info().
		Str("signal", string(sig.Signal)).
		Float64("score", score).
		Float64("rr", adjustedRR).
		Str("confidence", string(sig.Confidence)).
		Msg("altcoin analyzed")
	return sig
}

// btcCorrelation correlates the alt close series with BTC and scans for a
// divergence between them, treating the BTC closes as the price leg.
func btcCorrelation(btc *MarketContext, main models.CandleSeries) (bool, float64, indicators.DivergenceResult) {
	div := indicators.DivergenceResult{Description: "insufficient data"}
	if btc == nil || len(btc.CloseSeries) == 0 || len(main) == 0 {
		return false, 0, div
	}
	altCloses := main.Closes()
	n := len(btc.CloseSeries)
	if len(altCloses) < n {
		n = len(altCloses)
	}
	btcTail := btc.CloseSeries[len(btc.CloseSeries)-n:]
	altTail := altCloses[len(altCloses)-n:]

	corr := indicators.Correlation(btcTail, altTail, correlationWindow)

	if n >= minDivergenceCandles {
		synthetic := make(models.CandleSeries, n)
		for i, v := range btcTail {
			synthetic[i] = models.Candle{High: v, Low: v, Close: v}
		}
		div = indicators.Divergence(synthetic, altTail, "BTC", divergencePeriods)
	}
	return true, corr, div
}

func lastReasons(reasons []string, n int) string {
	if len(reasons) > n {
		reasons = reasons[len(reasons)-n:]
	}
	return strings.Join(reasons, ", ")
}
