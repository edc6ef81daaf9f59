package config

import "time"

type Config struct {
	Exchange   ExchangeConfig  `yaml:"-"`
	Telegram   TelegramConfig  `yaml:"-"`
	Database   DatabaseConfig  `yaml:"-"`
	Log        LogConfig       `yaml:"log"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	Scan       ScanConfig      `yaml:"scan"`
	Indicators IndicatorConfig `yaml:"indicators"`
}

// ExchangeConfig and the other env-only sections come from .env, never YAML.
type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type TelegramConfig struct {
	Enabled bool
	Token   string
	ChatID  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"false"`
	Addr    string `yaml:"addr" default:":9091"`
}

type ScanConfig struct {
	Interval       time.Duration `yaml:"interval" default:"10m" validate:"gt=0"`
	Timeframes     []string      `yaml:"timeframes" default:"[\"15m\",\"1h\",\"4h\"]" validate:"min=1,dive,oneof=15m 1h 4h"`
	TopAltcoins    int           `yaml:"top_altcoins" default:"15" validate:"gt=0"`
	MaxConcurrent  int           `yaml:"max_concurrent" default:"5" validate:"gt=0"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" default:"5m" validate:"gt=0"`
	CandleLimit    int           `yaml:"candle_limit" default:"250" validate:"gte=10"`
	OrderBookDepth int           `yaml:"orderbook_depth" default:"50" validate:"gt=0"`
	BTCCacheTTL    time.Duration `yaml:"btc_cache_ttl" default:"2m" validate:"gt=0"`
	MinQuoteVolume float64       `yaml:"min_quote_volume" default:"10"`
	ResultsFile    string        `yaml:"results_file" default:"signals_hierarchical.csv"`

	// Used when universe discovery fails.
	FallbackAltcoins []string `yaml:"fallback_altcoins"`
}

type IndicatorConfig struct {
	ZWindow            int `yaml:"z_window" default:"20" validate:"gt=1"`
	RSIPeriod          int `yaml:"rsi_period" default:"14" validate:"gt=1"`
	ATRPeriod          int `yaml:"atr_period" default:"14" validate:"gt=1"`
	EMAShort           int `yaml:"ema_short" default:"50" validate:"gt=1"`
	EMALong            int `yaml:"ema_long" default:"200" validate:"gt=1"`
	ConsensusThreshold int `yaml:"consensus_threshold" default:"2" validate:"gt=0"`
}
