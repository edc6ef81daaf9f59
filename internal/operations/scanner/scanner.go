package scanner

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"CryptoSignalBot/config"
	"CryptoSignalBot/internal/metrics"
	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/notifier"
	"CryptoSignalBot/internal/repositories"
	"CryptoSignalBot/internal/results"
	"CryptoSignalBot/internal/services/analysis"
	"CryptoSignalBot/internal/services/indicators"
)

const btcSymbol = "BTCUSDT"

// MarketData is the exchange surface the scanner needs.
type MarketData interface {
	FetchCandles(ctx context.Context, symbol, interval string, limit int) (models.CandleSeries, error)
	FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error)
	CheckLiquidity(ctx context.Context, symbol string, depth int, minQuoteVolume float64) (bool, models.LiquidityInfo, error)
	TopAltcoins(ctx context.Context, limit int) ([]string, error)
}

// Scanner drives the scan loop: BTC context first, then a bounded fan-out
// over the altcoin universe, then output dispatch.
type Scanner struct {
	cfg       config.ScanConfig
	market    MarketData
	builder   *analysis.ContextBuilder
	generator *analysis.SignalGenerator
	combiner  *analysis.Combiner
	notifier  notifier.Notifier
	writer    *results.Writer
	repo      *repositories.SignalRepository // nil when persistence is off
	log       zerolog.Logger
}

func New(cfg config.ScanConfig, market MarketData, builder *analysis.ContextBuilder, generator *analysis.SignalGenerator, combiner *analysis.Combiner, notif notifier.Notifier, writer *results.Writer, repo *repositories.SignalRepository, log zerolog.Logger) *Scanner {
	return &Scanner{
		cfg:       cfg,
		market:    market,
		builder:   builder,
		generator: generator,
		combiner:  combiner,
		notifier:  notif,
		writer:    writer,
		repo:      repo,
		log:       log.With().Str("component", "scanner").Logger(),
	}
}

// Run executes cycles until the context is canceled. The first cycle starts
// immediately.
func (s *Scanner) Run(ctx context.Context) error {
	for {
		if err := s.RunCycle(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.log.Error().Err(err).Msg("scan cycle failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.cfg.Interval):
		}
	}
}

// RunCycle performs one full scan. A BTC context failure aborts the cycle;
// individual altcoin failures only shrink the result set.
func (s *Scanner) RunCycle(ctx context.Context) error {
	cycleTime := time.Now()
	s.log.Info().Msg("scan cycle started")

	symbols := s.universe(ctx)

	btcSeries := s.fetchSeries(ctx, btcSymbol)
	if len(btcSeries) == 0 {
		return errors.New("no BTC candle data, cycle aborted")
	}
	btcCtx := s.builder.Build(btcSeries)
	if btcCtx == nil {
		return errors.New("BTC context unavailable, cycle aborted")
	}

	var mu sync.Mutex
	var rows []results.Row

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			row := s.analyzeAltcoin(gctx, symbol, btcCtx)
			if row == nil {
				return nil
			}
			mu.Lock()
			rows = append(rows, *row)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Alt.Symbol < rows[j].Alt.Symbol })

	s.dispatchAlerts(ctx, btcCtx, rows)

	if err := s.writer.WriteCycle(btcCtx, rows, cycleTime); err != nil {
		s.log.Error().Err(err).Msg("failed to write results file")
	}
	if s.repo != nil {
		if err := s.repo.CreateBatch(s.toRecords(btcCtx, rows, cycleTime)); err != nil {
			s.log.Error().Err(err).Msg("failed to persist signal records")
		}
	}

	metrics.CyclesTotal.Inc()
	s.log.Info().
		Int("symbols", len(rows)).
		Dur("elapsed", time.Since(cycleTime)).
		Msg("scan cycle finished")
	return nil
}

// universe discovers the altcoin list, falling back to the configured
// static list when the exchange call fails.
func (s *Scanner) universe(ctx context.Context) []string {
	symbols, err := s.market.TopAltcoins(ctx, s.cfg.TopAltcoins)
	if err != nil || len(symbols) == 0 {
		if err != nil {
			metrics.FetchErrors.WithLabelValues("universe").Inc()
			s.log.Warn().Err(err).Msg("universe discovery failed, using fallback list")
		}
		return s.cfg.FallbackAltcoins
	}
	return symbols
}

// fetchSeries loads every configured timeframe for one symbol, dropping
// timeframes that fail or come back too short.
func (s *Scanner) fetchSeries(ctx context.Context, symbol string) map[string]models.CandleSeries {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	series := make(map[string]models.CandleSeries, len(s.cfg.Timeframes))
	for _, tf := range s.cfg.Timeframes {
		candles, err := s.market.FetchCandles(fctx, symbol, tf, s.cfg.CandleLimit)
		if err != nil {
			metrics.FetchErrors.WithLabelValues("candles").Inc()
			s.log.Warn().Str("symbol", symbol).Str("timeframe", tf).Err(err).Msg("candle fetch failed")
			continue
		}
		if len(candles) < indicators.MinSnapshotCandles {
			s.log.Debug().Str("symbol", symbol).Str("timeframe", tf).Int("candles", len(candles)).Msg("timeframe too short, skipped")
			continue
		}
		series[tf] = candles
	}
	return series
}

func (s *Scanner) analyzeAltcoin(ctx context.Context, symbol string, btcCtx *analysis.MarketContext) *results.Row {
	series := s.fetchSeries(ctx, symbol)
	if len(series) == 0 {
		return nil
	}

	book, err := s.market.FetchOrderBook(ctx, symbol, s.cfg.OrderBookDepth)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("orderbook").Inc()
		s.log.Warn().Str("symbol", symbol).Err(err).Msg("order book fetch failed")
		book = nil
	}

	isLiquid, liquidity, err := s.market.CheckLiquidity(ctx, symbol, s.cfg.OrderBookDepth, s.cfg.MinQuoteVolume)
	if err != nil {
		s.log.Warn().Str("symbol", symbol).Err(err).Msg("liquidity check failed")
		isLiquid = true
		liquidity = models.LiquidityInfo{Summary: "OK"}
	}

	alt := s.generator.Build(analysis.AltcoinInput{
		Symbol:    symbol,
		Series:    series,
		Book:      book,
		IsLiquid:  isLiquid,
		Liquidity: liquidity,
	}, btcCtx)
	if alt == nil {
		return nil
	}
	combined := s.combiner.Combine(btcCtx, alt)
	if combined == nil {
		return nil
	}

	metrics.SymbolsAnalyzed.Inc()
	metrics.SignalsEmitted.WithLabelValues(string(combined.FinalSignal)).Inc()
	return &results.Row{Alt: alt, Combined: combined}
}

// dispatchAlerts notifies on confident combined signals, and separately on
// coins sitting in an accumulation regime.
func (s *Scanner) dispatchAlerts(ctx context.Context, btcCtx *analysis.MarketContext, rows []results.Row) {
	for _, row := range rows {
		switch {
		case row.Combined.Confidence == models.ConfidenceHigh || row.Combined.Confidence == models.ConfidenceMedium:
			if err := s.notifier.SendCombined(ctx, btcCtx, row.Alt, row.Combined); err != nil {
				s.log.Error().Str("symbol", row.Alt.Symbol).Err(err).Msg("combined alert failed")
				continue
			}
			metrics.AlertsSent.WithLabelValues("combined").Inc()
		case row.Alt.Regime == models.RegimeAccumulation:
			if err := s.notifier.SendAccumulation(ctx, row.Alt); err != nil {
				s.log.Error().Str("symbol", row.Alt.Symbol).Err(err).Msg("accumulation alert failed")
				continue
			}
			metrics.AlertsSent.WithLabelValues("accumulation").Inc()
		}
	}
}

func (s *Scanner) toRecords(btcCtx *analysis.MarketContext, rows []results.Row, cycleTime time.Time) []models.SignalRecord {
	records := make([]models.SignalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.SignalRecord{
			Symbol:      row.Alt.Symbol,
			FinalSignal: string(row.Combined.FinalSignal),
			AltSignal:   string(row.Alt.Signal),
			Confidence:  string(row.Combined.Confidence),
			BTCTrend:    string(btcCtx.Trend),
			BTCRegime:   string(btcCtx.Regime),
			Correlation: row.Combined.Correlation,
			IsDivergent: row.Combined.IsDivergent,
			Reason:      row.Combined.Reason,
			RewardRisk:  row.Alt.RewardRisk,
			Target:      row.Alt.Target,
			Stop:        row.Alt.Stop,
			CycleTime:   cycleTime,
		})
	}
	return records
}
