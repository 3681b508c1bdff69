package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"playstore-insights/services"
)

// Metrics exposes the state of the session to Prometheus.
type Metrics struct {
	filterUpdates   prometheus.Counter
	filteredApps    prometheus.Gauge
	filteredReviews prometheus.Gauge
	viewRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		filterUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "playstore",
			Name:      "filter_updates_total",
			Help:      "Number of filtered snapshots published.",
		}),
		filteredApps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "playstore",
			Name:      "filtered_apps",
			Help:      "Apps in the current filtered snapshot.",
		}),
		filteredReviews: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "playstore",
			Name:      "filtered_reviews",
			Help:      "Reviews in the current filtered snapshot.",
		}),
		viewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "playstore",
			Name:      "view_requests_total",
			Help:      "Aggregate view requests by view name.",
		}, []string{"view"}),
	}
	reg.MustRegister(m.filterUpdates, m.filteredApps, m.filteredReviews, m.viewRequests)
	return m
}

// Observe is registered with Session.OnUpdate.
func (m *Metrics) Observe(snap services.Snapshot) {
	m.filterUpdates.Inc()
	m.filteredApps.Set(float64(len(snap.Apps)))
	m.filteredReviews.Set(float64(len(snap.Reviews)))
}

func (m *Metrics) viewRequested(view string) {
	m.viewRequests.WithLabelValues(view).Inc()
}
