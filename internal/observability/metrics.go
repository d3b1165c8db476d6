package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// measurement service.
type Metrics struct {
	// Unit conversion metrics.
	ConversionsTotal    *prometheus.CounterVec // labels: category
	ConversionFallbacks prometheus.Counter
	FormatRequests      prometheus.Counter
	BatchSize           prometheus.Histogram

	// Water property metrics.
	WaterLookups        *prometheus.CounterVec // labels: medium={fresh,sea}, outcome={success,range_error,lookup_error,error}
	WaterLookupDuration prometheus.Histogram
	AnchorPoints        prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_measure",
			Name:      "conversions_total",
			Help:      "Unit conversions served, by category.",
		}, []string{"category"}),
		ConversionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_measure",
			Name:      "conversion_fallbacks_total",
			Help:      "Conversions that returned the input unchanged because no factor was registered.",
		}),
		FormatRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_measure",
			Name:      "format_requests_total",
			Help:      "Display formatting requests served.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marine_measure",
			Name:      "conversion_batch_size",
			Help:      "Number of entries per batch conversion request.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100},
		}),
		WaterLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_measure",
			Name:      "water_lookups_total",
			Help:      "Water property lookups by medium and outcome.",
		}, []string{"medium", "outcome"}),
		WaterLookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marine_measure",
			Name:      "water_lookup_duration_seconds",
			Help:      "Duration of a water property lookup including the anchor fetch.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AnchorPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "marine_measure",
			Name:      "anchor_points",
			Help:      "Anchor point rows available across all media.",
		}),
	}

	prometheus.MustRegister(
		m.ConversionsTotal,
		m.ConversionFallbacks,
		m.FormatRequests,
		m.BatchSize,
		m.WaterLookups,
		m.WaterLookupDuration,
		m.AnchorPoints,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ConversionsTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_measure", Name: "conversions_total"}, []string{"category"}),
		ConversionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_measure", Name: "conversion_fallbacks_total"}),
		FormatRequests:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_measure", Name: "format_requests_total"}),
		BatchSize:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "marine_measure", Name: "conversion_batch_size"}),
		WaterLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_measure", Name: "water_lookups_total"}, []string{"medium", "outcome"}),
		WaterLookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "marine_measure", Name: "water_lookup_duration_seconds"}),
		AnchorPoints:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "marine_measure", Name: "anchor_points"}),
	}
}
