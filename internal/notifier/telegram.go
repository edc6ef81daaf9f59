package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"CryptoSignalBot/internal/services/analysis"
)

const telegramAPI = "https://api.telegram.org"

// TelegramNotifier posts alerts to a chat through the Bot API.
type TelegramNotifier struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewTelegramNotifier(token, chatID string, log zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPI,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With().Str("component", "telegram").Logger(),
	}
}

func (n *TelegramNotifier) SendCombined(ctx context.Context, btc *analysis.MarketContext, alt *analysis.AltcoinSignal, combined *analysis.CombinedSignal) error {
	return n.sendMessage(ctx, formatCombined(btc, alt, combined))
}

func (n *TelegramNotifier) SendAccumulation(ctx context.Context, alt *analysis.AltcoinSignal) error {
	return n.sendMessage(ctx, formatAccumulation(alt))
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram responded %d: %s", resp.StatusCode, string(body))
	}
	n.log.Debug().Msg("telegram message delivered")
	return nil
}

func formatCombined(btc *analysis.MarketContext, alt *analysis.AltcoinSignal, combined *analysis.CombinedSignal) string {
	divergent := "no"
	if combined.IsDivergent {
		divergent = "yes"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 `%s`\n", combined.FinalSignal)
	fmt.Fprintf(&b, "*Coin:* `%s`\n", alt.Symbol)
	fmt.Fprintf(&b, "*Price:* `%.8f`\n", alt.Price)
	b.WriteString("📊 *BTC context:*\n")
	fmt.Fprintf(&b, "  • Trend: %s\n", strings.ToUpper(string(btc.Trend)))
	fmt.Fprintf(&b, "  • Regime: %s\n", btc.Regime)
	fmt.Fprintf(&b, "  • Volatility: %s\n", btc.Volatility)
	fmt.Fprintf(&b, "  • Z-score: %.2f\n", btc.Z)
	fmt.Fprintf(&b, "  • RSI: %.1f\n", btc.RSI)
	fmt.Fprintf(&b, "  • MACD: %.3f\n", btc.MACDHist)
	b.WriteString("📈 *Altcoin analysis:*\n")
	fmt.Fprintf(&b, "  • Signal: %s\n", alt.Signal)
	fmt.Fprintf(&b, "  • Trend: %s\n", strings.ToUpper(string(alt.Trend)))
	fmt.Fprintf(&b, "  • Regime: %s\n", alt.Regime)
	fmt.Fprintf(&b, "  • R/R: `%.2f`\n", alt.RewardRisk)
	b.WriteString("🔗 *Relation to BTC:*\n")
	fmt.Fprintf(&b, "  • Correlation: `%.2f`\n", combined.Correlation)
	fmt.Fprintf(&b, "  • Divergence: %s\n", divergent)
	fmt.Fprintf(&b, "💡 *Reason:* %s\n", combined.Reason)
	fmt.Fprintf(&b, "🎯 *Target:* `%.8f`\n", alt.Target)
	fmt.Fprintf(&b, "🛑 *Stop:* `%.8f`", alt.Stop)
	return b.String()
}

func formatAccumulation(alt *analysis.AltcoinSignal) string {
	var b strings.Builder
	b.WriteString("🔍 *Coin in accumulation phase*\n")
	fmt.Fprintf(&b, "*Coin:* `%s`\n", alt.Symbol)
	fmt.Fprintf(&b, "*Price:* `%.8f`\n", alt.Price)
	b.WriteString("📈 *Signal:* ACCUMULATION\n")
	fmt.Fprintf(&b, "📊 *R/R:* `%.2f`\n", alt.RewardRisk)
	b.WriteString("💡 *Possible accumulation by large players. Watch for confirmation.*")
	return b.String()
}
