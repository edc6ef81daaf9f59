package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/services/analysis"
)

// Notifier delivers scan alerts. Implementations must be safe for use from
// a single dispatching goroutine.
type Notifier interface {
	// SendCombined alerts on a high or medium confidence combined signal.
	SendCombined(ctx context.Context, btc *analysis.MarketContext, alt *analysis.AltcoinSignal, combined *analysis.CombinedSignal) error
	// SendAccumulation alerts on a coin sitting in an accumulation regime.
	SendAccumulation(ctx context.Context, alt *analysis.AltcoinSignal) error
}

// LogNotifier writes alerts to the log. Used when Telegram is not
// configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) SendCombined(_ context.Context, _ *analysis.MarketContext, alt *analysis.AltcoinSignal, combined *analysis.CombinedSignal) error {
	n.log.Info().
		Str("symbol", alt.Symbol).
		Str("signal", string(combined.FinalSignal)).
		Str("confidence", string(combined.Confidence)).
		Str("reason", combined.Reason).
		Msg("signal alert")
	return nil
}

func (n *LogNotifier) SendAccumulation(_ context.Context, alt *analysis.AltcoinSignal) error {
	n.log.Info().
		Str("symbol", alt.Symbol).
		Float64("rr", alt.RewardRisk).
		Msg("accumulation alert")
	return nil
}
