package v1

import (
	"net/http"

	"atm-monitor/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	reportsCreated *prometheus.CounterVec
	slaBreaches    *prometheus.GaugeVec
	summaryBuilds  prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reportsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atm_reports_created_total",
			Help: "Total ATM status reports created, by status.",
		}, []string{"status"}),
		slaBreaches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "atm_sla_breaches",
			Help: "SLA breaches in the most recent summary, by severity.",
		}, []string{"severity"}),
		summaryBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "atm_summary_builds_total",
			Help: "Total dashboard summaries built.",
		}),
	}

	m.registry.MustRegister(
		m.reportsCreated,
		m.slaBreaches,
		m.summaryBuilds,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReportCreated(status models.Status) {
	if m == nil {
		return
	}
	m.reportsCreated.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) SummaryBuilt(s models.Summary) {
	if m == nil {
		return
	}
	m.summaryBuilds.Inc()
	for sev, n := range countBySeverity(s.SLA.Breaches) {
		m.slaBreaches.WithLabelValues(string(sev)).Set(float64(n))
	}
}
