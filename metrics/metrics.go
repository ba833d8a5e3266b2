package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for analysis outcomes.
const (
	ResultOK            = "ok"
	ResultNoToolCall    = "no_tool_call"
	ResultUpstreamError = "upstream_error"
)

var (
	once sync.Once

	// AnalyzeTotal counts menu analysis requests by outcome.
	AnalyzeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menuscan",
		Subsystem: "analyzer",
		Name:      "analyze_total",
		Help:      "Total number of menu analysis requests, labeled by result.",
	}, []string{"result"})

	// AnalyzeDurationSeconds is end-to-end time per analysis, dominated by
	// the single outbound inference call.
	AnalyzeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "menuscan",
		Subsystem: "analyzer",
		Name:      "analyze_duration_seconds",
		Help:      "End-to-end time to analyze a menu request (inference call included).",
		// Coarse buckets; the inference call can take tens of seconds.
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90, 120},
	}, []string{"result"})

	// DishesParsedTotal counts dishes extracted across successful analyses.
	DishesParsedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "menuscan",
		Subsystem: "analyzer",
		Name:      "dishes_parsed_total",
		Help:      "Total number of dishes extracted from successful analyses.",
	})
)

// Register registers analyzer metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalyzeTotal,
			AnalyzeDurationSeconds,
			DishesParsedTotal,
		)
	})
}
