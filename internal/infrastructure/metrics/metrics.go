package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Gateway
	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_generation_requests_total",
			Help: "Documentation requests by result",
		},
		[]string{"result"}, // result: success|invalid_input|upstream_failure
	)

	// Source fetch
	SourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_source_fetches_total",
			Help: "Source file fetches by mode and result",
		},
		[]string{"mode", "result"}, // mode: raw|api, result: ok|error
	)
	SourceFetchDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codedoc_source_fetch_duration_seconds",
			Help:    "Duration of source file fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	SourceBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codedoc_source_bytes",
			Help:    "Size of fetched source files in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8), // 256B..4MiB
		},
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_llm_requests_total",
			Help: "Number of LLM requests by model",
		},
		[]string{"model"},
	)
	LLMDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codedoc_llm_duration_seconds",
			Help:    "Duration of LLM generation calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
	)
	DocumentationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_documentation_outcomes_total",
			Help: "Documentation generation outcomes",
		},
		[]string{"outcome"}, // outcome: generated|empty|failed
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codedoc_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// Gateway
		GenerationRequests,
		// Source
		SourceFetches,
		SourceFetchDurationSeconds,
		SourceBytes,
		// LLM
		LLMRequests,
		LLMDurationSeconds,
		DocumentationOutcomes,
		// Errors
		Errors,
	)
}

// NewMetricsServer serves the default registry on addr. The caller runs and shuts it down.
func NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Gateway
func IncGenerationRequest(result string) {
	GenerationRequests.WithLabelValues(result).Inc()
}

// Source
func ObserveSourceFetch(mode string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SourceFetches.WithLabelValues(mode, result).Inc()
	SourceFetchDurationSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

func ObserveSourceBytes(n int) {
	SourceBytes.Observe(float64(n))
}

// LLM
func IncLLMRequest(model string) {
	LLMRequests.WithLabelValues(model).Inc()
}

func ObserveLLMDuration(d time.Duration) {
	LLMDurationSeconds.Observe(d.Seconds())
}

func IncDocumentationOutcome(outcome string) {
	DocumentationOutcomes.WithLabelValues(outcome).Inc()
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
