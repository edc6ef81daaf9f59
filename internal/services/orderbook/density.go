package orderbook

import (
	"math"

	"CryptoSignalBot/internal/models"
)

// densityZonePct bounds the high-density zone around the current price.
const densityZonePct = 0.005

// DefaultReferenceQuote is the quote-currency amount used to estimate price
// impact, roughly a retail-sized market order.
const DefaultReferenceQuote = 1000.0

// Side selects which half of the book a fill walks.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Density finds the nearest resting levels around the current price and sums
// the quote volume within +/-0.5% of it. Depth caps how many levels per side
// are considered; levels with a non-positive price or quantity are skipped.
func Density(book models.OrderBook, currentPrice float64, depth int) models.DensityAnalysis {
	out := models.DensityAnalysis{CurrentPrice: currentPrice}
	if currentPrice <= 0 {
		return out
	}
	bids := book.Bids
	if depth > 0 && len(bids) > depth {
		bids = bids[:depth]
	}
	asks := book.Asks
	if depth > 0 && len(asks) > depth {
		asks = asks[:depth]
	}

	zone := currentPrice * densityZonePct
	for _, lvl := range bids {
		if lvl.Price <= 0 || lvl.Quantity <= 0 {
			continue
		}
		if lvl.Price < currentPrice && lvl.Price > out.NearestBid {
			out.NearestBid = lvl.Price
		}
		if math.Abs(lvl.Price-currentPrice) <= zone {
			out.DensityScore += lvl.Price * lvl.Quantity
		}
	}
	for _, lvl := range asks {
		if lvl.Price <= 0 || lvl.Quantity <= 0 {
			continue
		}
		if lvl.Price > currentPrice && (out.NearestAsk == 0 || lvl.Price < out.NearestAsk) {
			out.NearestAsk = lvl.Price
		}
		if math.Abs(lvl.Price-currentPrice) <= zone {
			out.DensityScore += lvl.Price * lvl.Quantity
		}
	}
	return out
}

// PriceImpact estimates the % slippage of filling quoteTarget against the
// book. Buys walk the asks, sells the bids. An empty or degenerate book
// yields 0.
func PriceImpact(book models.OrderBook, quoteTarget float64, side Side) float64 {
	levels := book.Asks
	if side == SideSell {
		levels = book.Bids
	}
	if len(levels) == 0 || quoteTarget <= 0 {
		return 0
	}
	startPrice := levels[0].Price
	if startPrice <= 0 {
		return 0
	}

	totalQuote, totalQty := 0.0, 0.0
	for _, lvl := range levels {
		if lvl.Price <= 0 || lvl.Quantity <= 0 {
			continue
		}
		quote := lvl.Price * lvl.Quantity
		if totalQuote+quote > quoteTarget {
			remaining := quoteTarget - totalQuote
			totalQty += remaining / lvl.Price
			totalQuote += remaining
			break
		}
		totalQty += lvl.Quantity
		totalQuote += quote
	}
	if totalQuote == 0 || totalQty == 0 {
		return 0
	}
	avgPrice := totalQuote / totalQty
	return math.Abs(avgPrice-startPrice) / startPrice * 100.0
}
