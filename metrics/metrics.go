// Package metrics provides Prometheus observability metrics for the call generator.
// It includes Critical and Important metrics for data-quality and operational visibility.
package metrics

import (
	"strconv"

	"synth911/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Run outcomes used as the "outcome" label of RunsTotal.
const (
	OutcomeSuccess     = "success"
	OutcomeConfigError = "config_error"
)

// =============================================================================
// CRITICAL METRICS - Generated Data Visibility
// =============================================================================

// RecordsGeneratedTotal tracks generated records by agency.
// Compare against configured weights to spot skewed agency mixes.
var RecordsGeneratedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "generator",
	Name:      "records_total",
	Help:      "Total synthetic call records generated, by agency",
}, []string{"agency"})

// RecordsByPriorityTotal tracks generated records by priority number.
var RecordsByPriorityTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "generator",
	Name:      "priority_records_total",
	Help:      "Total synthetic call records generated, by priority number",
}, []string{"priority"})

// RunsTotal tracks generation runs by outcome.
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "generator",
	Name:      "runs_total",
	Help:      "Total generation runs by outcome",
}, []string{"outcome"})

// ConfigErrorsTotal tracks rejected configurations by offending field.
var ConfigErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "generator",
	Name:      "config_errors_total",
	Help:      "Total rejected generation requests by configuration field",
}, []string{"field"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// LocaleFallbacksTotal tracks runs that fell back to the default locale.
var LocaleFallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "generator",
	Name:      "locale_fallbacks_total",
	Help:      "Total runs whose requested locale was unsupported",
})

// GenerationDurationSeconds tracks time to generate a table.
var GenerationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "generator",
	Name:      "duration_seconds",
	Help:      "Time taken to generate a table of call records",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
})

// LastRunRecords tracks the size of the most recent table.
var LastRunRecords = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "generator",
	Name:      "last_run_records",
	Help:      "Number of records produced by the most recent generation run",
})

// ParserRecordsTotal tracks total records successfully read back from CSV.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// =============================================================================
// Helper Functions
// =============================================================================

// ObserveTable records the per-record counters and duration of a finished run.
func ObserveTable(table *models.Table, seconds float64) {
	for _, r := range table.Records {
		RecordsGeneratedTotal.WithLabelValues(string(r.Agency)).Inc()
		RecordsByPriorityTotal.WithLabelValues(strconv.Itoa(r.PriorityNumber)).Inc()
	}
	RunsTotal.WithLabelValues(OutcomeSuccess).Inc()
	LastRunRecords.Set(float64(len(table.Records)))
	GenerationDurationSeconds.Observe(seconds)
}

// ObserveConfigError records a rejected configuration.
func ObserveConfigError(field string) {
	RunsTotal.WithLabelValues(OutcomeConfigError).Inc()
	ConfigErrorsTotal.WithLabelValues(field).Inc()
}
