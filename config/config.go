package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultFallbackAltcoins is used when universe discovery fails and no
// fallback list is configured.
var defaultFallbackAltcoins = []string{
	"ETHUSDT", "SOLUSDT", "BNBUSDT", "XRPUSDT", "ADAUSDT", "DOGEUSDT",
	"DOTUSDT", "AVAXUSDT", "LINKUSDT", "TRXUSDT", "SUIUSDT", "XLMUSDT",
	"BCHUSDT", "HBARUSDT", "LTCUSDT", "TONUSDT",
}

// Load reads tunables from the YAML file at path (missing file means
// defaults) and secrets from the environment, .env included.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if len(cfg.Scan.FallbackAltcoins) == 0 {
		cfg.Scan.FallbackAltcoins = defaultFallbackAltcoins
	}

	cfg.Exchange = ExchangeConfig{
		APIKey:    os.Getenv("BINANCE_API_KEY"),
		SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
	}
	token := os.Getenv("TELEGRAM_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	cfg.Telegram = TelegramConfig{
		Enabled: token != "" && chatID != "",
		Token:   token,
		ChatID:  chatID,
	}
	cfg.Database = DatabaseConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     EnvtoInt(os.Getenv("DB_PORT")),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
