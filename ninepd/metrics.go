package ninepd

import "github.com/prometheus/client_golang/prometheus"

// serverMetrics holds the optional Prometheus instrumentation
// described in SPEC_FULL.md §4.10. It is only constructed (and only
// ever non-nil) when Server.Registerer is set, so an embedder that
// doesn't want Prometheus pulls in no metrics overhead at all.
type serverMetrics struct {
	requestsTotal      *prometheus.CounterVec
	requestErrorsTotal *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	fidsOpen           prometheus.Gauge
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ninep_requests_total",
			Help: "Total number of 9P requests dispatched, by message type.",
		}, []string{"type"}),
		requestErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ninep_request_errors_total",
			Help: "Total number of 9P requests that completed with an error reply, by message type.",
		}, []string{"type"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ninep_request_duration_seconds",
			Help:    "Latency of 9P request handling, by message type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		fidsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ninep_fids_open",
			Help: "Number of fids currently open across all connections.",
		}),
	}
	reg.MustRegister(m.requestsTotal, m.requestErrorsTotal, m.requestDuration, m.fidsOpen)
	return m
}

// metricsFor lazily builds the server's metrics the first time a
// Registerer is present, so Server can be used zero-value with no
// Registerer and never touch the prometheus package at all.
func (s *Server) metricsFor() *serverMetrics {
	if s.Registerer == nil {
		return nil
	}
	s.metricsOnce.Do(func() {
		s.metrics = newServerMetrics(s.Registerer)
	})
	return s.metrics
}
