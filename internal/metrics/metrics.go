package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_cycles_total",
		Help: "Completed scan cycles.",
	})

	SymbolsAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_symbols_analyzed_total",
		Help: "Altcoins analyzed across all cycles.",
	})

	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_fetch_errors_total",
		Help: "Exchange fetch failures by kind.",
	}, []string{"kind"})

	AlertsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_alerts_sent_total",
		Help: "Alerts dispatched by type.",
	}, []string{"type"})

	SignalsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_signals_emitted_total",
		Help: "Final combined signals by label.",
	}, []string{"signal"})
)

var registerOnce sync.Once

// Register installs all collectors in the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CyclesTotal,
			SymbolsAnalyzed,
			FetchErrors,
			AlertsSent,
			SignalsEmitted,
		)
	})
}

// Serve exposes /metrics on addr. Blocks until the listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
