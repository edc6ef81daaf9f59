package binance

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/services/orderbook"
)

// Stablecoin base assets never worth scanning, plus BTC itself since it is
// the market context rather than a scan target.
var excludedBases = map[string]bool{
	"BTC":   true,
	"USDT":  true,
	"USDC":  true,
	"BUSD":  true,
	"DAI":   true,
	"TUSD":  true,
	"FDUSD": true,
	"USDP":  true,
	"EURI":  true,
	"PAX":   true,
	"UST":   true,
}

type Client struct {
	client      *binance.Client
	rateLimiter *rate.Limiter
	httpClient  *http.Client
	log         zerolog.Logger
}

func NewClient(apiKey, secretKey string, log zerolog.Logger) *Client {
	// Create custom HTTP client with timeouts
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	// Create spot client with custom HTTP client
	spotClient := binance.NewClient(apiKey, secretKey)
	spotClient.HTTPClient = httpClient

	// Create rate limiter: 10 requests per second with burst of 20
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		client:      spotClient,
		rateLimiter: limiter,
		httpClient:  httpClient,
		log:         log.With().Str("component", "binance").Logger(),
	}
}

// FetchCandles loads up to limit recent klines for one symbol and interval,
// retrying transient failures with exponential backoff.
func (c *Client) FetchCandles(ctx context.Context, symbol, interval string, limit int) (models.CandleSeries, error) {
	maxRetries := 3
	backoff := 100 * time.Millisecond

	var klines []*binance.Kline
	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		var err error
		klines, err = c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			Limit(limit).
			Do(ctx)
		if err == nil {
			break
		}

		// If this was the last attempt, return the error
		if attempt == maxRetries {
			return nil, fmt.Errorf("fetch klines %s %s: %w", symbol, interval, err)
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * backoff
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	candles := make(models.CandleSeries, 0, len(klines))
	for _, k := range klines {
		candles = append(candles, models.Candle{
			OpenTime: time.UnixMilli(k.OpenTime),
			Open:     parseFloat(k.Open),
			High:     parseFloat(k.High),
			Low:      parseFloat(k.Low),
			Close:    parseFloat(k.Close),
			Volume:   parseFloat(k.Volume),
		})
	}
	return candles, nil
}

// FetchOrderBook loads a depth snapshot for one symbol.
func (c *Client) FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.client.NewDepthService().
		Symbol(symbol).
		Limit(depth).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch depth %s: %w", symbol, err)
	}

	book := &models.OrderBook{
		Bids: make([]models.PriceLevel, 0, len(res.Bids)),
		Asks: make([]models.PriceLevel, 0, len(res.Asks)),
	}
	for _, b := range res.Bids {
		book.Bids = append(book.Bids, models.PriceLevel{Price: parseFloat(b.Price), Quantity: parseFloat(b.Quantity)})
	}
	for _, a := range res.Asks {
		book.Asks = append(book.Asks, models.PriceLevel{Price: parseFloat(a.Price), Quantity: parseFloat(a.Quantity)})
	}
	return book, nil
}

// CheckLiquidity grades one symbol from its 24h stats and order book.
// Illiquid when the spread exceeds 2%, the 24h quote volume sits below the
// floor, or filling a reference order moves the price more than 1%.
func (c *Client) CheckLiquidity(ctx context.Context, symbol string, depth int, minQuoteVolume float64) (bool, models.LiquidityInfo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false, models.LiquidityInfo{}, err
	}
	stats, err := c.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil || len(stats) == 0 {
		return false, models.LiquidityInfo{Summary: "no ticker data"}, fmt.Errorf("fetch 24h stats %s: %w", symbol, err)
	}
	st := stats[0]

	bid := parseFloat(st.BidPrice)
	ask := parseFloat(st.AskPrice)
	if bid == 0 || ask == 0 {
		return false, models.LiquidityInfo{Summary: "no spread data"}, nil
	}
	spread := (ask - bid) / bid * 100
	quoteVolume := parseFloat(st.QuoteVolume)
	lastPrice := parseFloat(st.LastPrice)
	if lastPrice == 0 {
		lastPrice = bid
	}

	info := models.LiquidityInfo{
		SpreadPct:   spread,
		QuoteVolume: quoteVolume,
	}

	book, err := c.FetchOrderBook(ctx, symbol, depth)
	if err != nil {
		c.log.Warn().Str("symbol", symbol).Err(err).Msg("order book unavailable for liquidity check")
	} else if len(book.Bids) > 0 && len(book.Asks) > 0 {
		density := orderbook.Density(*book, lastPrice, depth)
		density.PriceImpact = orderbook.PriceImpact(*book, orderbook.DefaultReferenceQuote, orderbook.SideBuy)
		density.SpreadPct = spread
		info.Density = &density
	}

	isLiquid := true
	info.Summary = fmt.Sprintf("OK (spread: %.2f%%, volume: %.0f)", spread, quoteVolume)
	if spread > 2.0 || quoteVolume < minQuoteVolume || (info.Density != nil && info.Density.PriceImpact > 1.0) {
		isLiquid = false
		info.Summary = fmt.Sprintf("low liquidity (spread: %.2f%%, volume: %.0f)", spread, quoteVolume)
	}
	return isLiquid, info, nil
}

// TopAltcoins returns the highest quote-volume USDT spot pairs, excluding
// stablecoins and BTC.
func (c *Client) TopAltcoins(ctx context.Context, limit int) ([]string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	info, err := c.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange info: %w", err)
	}

	tradable := make(map[string]bool, len(info.Symbols))
	for _, s := range info.Symbols {
		if s.Status == "TRADING" && s.QuoteAsset == "USDT" && s.IsSpotTradingAllowed && !excludedBases[s.BaseAsset] {
			tradable[s.Symbol] = true
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	stats, err := c.client.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch 24h stats: %w", err)
	}

	volumes := make(map[string]float64, len(stats))
	for _, st := range stats {
		if tradable[st.Symbol] {
			volumes[st.Symbol] = parseFloat(st.QuoteVolume)
		}
	}
	return SelectTopAltcoins(volumes, limit), nil
}

// SelectTopAltcoins orders symbols by 24h quote volume, highest first, and
// caps the list at limit. Ties break alphabetically for stable output.
func SelectTopAltcoins(volumes map[string]float64, limit int) []string {
	symbols := make([]string, 0, len(volumes))
	for s := range volumes {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool {
		if volumes[symbols[i]] != volumes[symbols[j]] {
			return volumes[symbols[i]] > volumes[symbols[j]]
		}
		return symbols[i] < symbols[j]
	})
	if limit > 0 && len(symbols) > limit {
		symbols = symbols[:limit]
	}
	return symbols
}

// BaseAsset strips the USDT suffix from a pair symbol.
func BaseAsset(symbol string) string {
	return strings.TrimSuffix(symbol, "USDT")
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
