package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"CryptoSignalBot/config"
	"CryptoSignalBot/internal/cache"
	"CryptoSignalBot/internal/logging"
	"CryptoSignalBot/internal/metrics"
	"CryptoSignalBot/internal/models"
	"CryptoSignalBot/internal/notifier"
	"CryptoSignalBot/internal/operations/binance"
	"CryptoSignalBot/internal/operations/scanner"
	"CryptoSignalBot/internal/repositories"
	"CryptoSignalBot/internal/results"
	"CryptoSignalBot/internal/services/analysis"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	metrics.Register()
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	// Setup database (optional)
	var repo *repositories.SignalRepository
	if cfg.Database.Host != "" {
		db := setupDatabase(cfg.Database, log)
		repo = repositories.NewSignalRepository(db)
	} else {
		log.Info().Msg("database not configured, persistence disabled")
	}

	// Initialize Binance client
	client := binance.NewClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey, log)

	// Notifier selection
	var notif notifier.Notifier
	if cfg.Telegram.Enabled {
		notif = notifier.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		log.Info().Msg("telegram alerts enabled")
	} else {
		notif = notifier.NewLogNotifier(log)
	}

	params := analysis.Params{
		ZWindow:            cfg.Indicators.ZWindow,
		RSIPeriod:          cfg.Indicators.RSIPeriod,
		ATRPeriod:          cfg.Indicators.ATRPeriod,
		EMAShort:           cfg.Indicators.EMAShort,
		EMALong:            cfg.Indicators.EMALong,
		ConsensusThreshold: cfg.Indicators.ConsensusThreshold,
		Timeframes:         cfg.Scan.Timeframes,
	}
	btcCache := cache.NewSlot[analysis.MarketContext](cfg.Scan.BTCCacheTTL)
	builder := analysis.NewContextBuilder(params, btcCache, log)
	generator := analysis.NewSignalGenerator(params, log)
	combiner := analysis.NewCombiner(log)
	writer := results.NewWriter(cfg.Scan.ResultsFile)

	sc := scanner.New(cfg.Scan, client, builder, generator, combiner, notif, writer, repo, log)

	// Setup context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("top_altcoins", cfg.Scan.TopAltcoins).
		Dur("interval", cfg.Scan.Interval).
		Msg("scanner starting")

	if err := sc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("scanner stopped with error")
	}
	log.Info().Msg("shutdown complete")
}

func setupDatabase(dbConfig config.DatabaseConfig, log zerolog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto migrate database schemas
	if err := db.AutoMigrate(&models.SignalRecord{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	return db
}
