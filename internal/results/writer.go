package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"CryptoSignalBot/internal/services/analysis"
)

var header = []string{
	"alt", "final_signal", "alt_signal", "confidence",
	"btc_trend", "btc_regime", "correlation", "is_divergent",
	"reason", "rr", "target", "stop", "timestamp",
}

// Row pairs one altcoin's standalone and combined verdicts for output.
type Row struct {
	Alt      *analysis.AltcoinSignal
	Combined *analysis.CombinedSignal
}

// Writer dumps one CSV snapshot per scan cycle, overwriting the previous
// file so the latest cycle is always at the configured path.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteCycle writes the full result set of one cycle.
func (w *Writer) WriteCycle(btc *analysis.MarketContext, rows []Row, cycleTime time.Time) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	ts := cycleTime.Format("2006-01-02 15:04:05")
	for _, row := range rows {
		if row.Alt == nil || row.Combined == nil {
			continue
		}
		record := []string{
			row.Alt.Symbol,
			string(row.Combined.FinalSignal),
			string(row.Alt.Signal),
			string(row.Combined.Confidence),
			string(btc.Trend),
			string(btc.Regime),
			fmt.Sprintf("%.4f", row.Combined.Correlation),
			fmt.Sprintf("%t", row.Combined.IsDivergent),
			row.Combined.Reason,
			fmt.Sprintf("%.2f", row.Alt.RewardRisk),
			fmt.Sprintf("%.8f", row.Alt.Target),
			fmt.Sprintf("%.8f", row.Alt.Stop),
			ts,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
