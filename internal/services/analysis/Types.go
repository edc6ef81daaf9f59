package analysis

import (
	"time"

	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/indicators"
)

// MarketContext is the shared BTC read used by every altcoin worker in a
// cycle. CloseSeries keeps the trend-timeframe closes for correlation.
type MarketContext struct {
	Symbol     string
	Price      float64
	Z          float64
	RSI        float64
	MACDHist   float64
	StochK     float64
	VolumeZ    float64
	ATRPct     float64
	Trend      models.Trend
	Regime     models.Regime
	Volatility models.Volatility

	RSIDivergence  indicators.DivergenceResult
	MACDDivergence indicators.DivergenceResult

	Confidence  models.Confidence
	Score       float64
	CloseSeries []float64
	Frames      []*indicators.TimeframeSnapshot
	Consensus   map[string]ConsensusResult
	CreatedAt   time.Time
}

// AltcoinSignal is the standalone verdict for one altcoin before the BTC
// context is blended in.
type AltcoinSignal struct {
	Symbol     string
	Signal     models.Signal
	Reason     string
	Reasons    []string
	Confidence models.Confidence
	Regime     models.Regime
	Volatility models.Volatility
	Trend      models.Trend

	Score      float64
	RewardRisk float64
	Price      float64
	Entry      string
	Target     float64
	Stop       float64

	CloseSeries    []float64
	BTCCorrelation float64
	BTCDivergence  indicators.DivergenceResult

	IsLiquid  bool
	Liquidity models.LiquidityInfo
}

// CombinedSignal is the final verdict after weighting the altcoin signal
// against the BTC context.
type CombinedSignal struct {
	FinalSignal models.Signal
	Reason      string
	Confidence  models.Confidence
	Score       float64

	Correlation float64
	IsDivergent bool

	BTCWeight         float64
	AltWeight         float64
	BTCConfidenceUsed models.Confidence
}
