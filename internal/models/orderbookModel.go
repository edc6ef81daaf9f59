package models

// PriceLevel is one resting order book level.
type PriceLevel struct {
	Price    float64
	Quantity float64
}

// OrderBook is a depth snapshot for one symbol.
type OrderBook struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// DensityAnalysis summarizes order book structure near the current price.
type DensityAnalysis struct {
	NearestBid   float64 // nearest bid below price, 0 when none
	NearestAsk   float64 // nearest ask above price, 0 when none
	DensityScore float64 // quote volume resting within +/-0.5% of price
	CurrentPrice float64
	PriceImpact  float64 // % slippage filling the reference quote amount
	SpreadPct    float64
}

// LiquidityInfo carries the liquidity assessment for one symbol.
type LiquidityInfo struct {
	Summary     string
	SpreadPct   float64
	QuoteVolume float64
	Density     *DensityAnalysis // nil when the order book was unavailable
}

// Stressed reports whether the order book shows execution stress
// (wide spread or heavy price impact). Nil means no book was available.
func (d *DensityAnalysis) Stressed() bool {
	if d == nil {
		return false
	}
	return d.PriceImpact > 1.0 || d.SpreadPct > 0.5
}
