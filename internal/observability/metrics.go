package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the action server.
type Metrics struct {
	ActionsTotal   *prometheus.CounterVec   // labels: action, outcome={ok,no_data,not_found,unknown_action}
	ActionDuration *prometheus.HistogramVec // labels: action
	DatasetErrors  *prometheus.CounterVec   // labels: dataset={facilities,flood_info}

	// Audit publishing metrics.
	AuditPublished prometheus.Counter
	AuditDropped   prometheus.Counter
	AuditErrors    prometheus.Counter
	AuditBatchSize prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "actions_total",
			Help:      "Actions handled by name and outcome.",
		}, []string{"action", "outcome"}),
		ActionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flood_actions",
			Name:      "action_duration_seconds",
			Help:      "Time to compose an action's response, including dataset loads.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"action"}),
		DatasetErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "dataset_errors_total",
			Help:      "Dataset loads that failed to read or parse.",
		}, []string{"dataset"}),
		AuditPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "audit_events_published_total",
			Help:      "Action events written to the audit topic.",
		}),
		AuditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "audit_events_dropped_total",
			Help:      "Action events dropped because the buffer was full or publishing gave up.",
		}),
		AuditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "audit_publish_errors_total",
			Help:      "Failed attempts to write an audit batch.",
		}),
		AuditBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_actions",
			Name:      "audit_batch_size",
			Help:      "Number of events per audit batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_actions",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_actions",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_actions",
			Name:      "geocode_enabled",
			Help:      "1 when location geocoding is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ActionsTotal,
		m.ActionDuration,
		m.DatasetErrors,
		m.AuditPublished,
		m.AuditDropped,
		m.AuditErrors,
		m.AuditBatchSize,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ActionsTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_actions", Name: "actions_total"}, []string{"action", "outcome"}),
		ActionDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "flood_actions", Name: "action_duration_seconds"}, []string{"action"}),
		DatasetErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_actions", Name: "dataset_errors_total"}, []string{"dataset"}),
		AuditPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_actions", Name: "audit_events_published_total"}),
		AuditDropped:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_actions", Name: "audit_events_dropped_total"}),
		AuditErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_actions", Name: "audit_publish_errors_total"}),
		AuditBatchSize:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_actions", Name: "audit_batch_size"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_actions", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_actions", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_actions", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_actions", Name: "geocode_enabled"}),
	}
}
