package metrics

import "github.com/prometheus/client_golang/prometheus"

// RedactionMetrics exposes counters/histograms for the de-identification
// pipeline. All observe methods are safe on a nil receiver so callers can
// run without metrics wired.
type RedactionMetrics struct {
	documentsTotal    *prometheus.CounterVec
	placeholdersTotal *prometheus.CounterVec
	pipelineLatency   *prometheus.HistogramVec
}

func NewRedactionMetrics(reg prometheus.Registerer) *RedactionMetrics {
	m := &RedactionMetrics{
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notomd",
			Subsystem: "deid",
			Name:      "documents_total",
			Help:      "Documents processed, by pipeline mode",
		}, []string{"mode"}),
		placeholdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notomd",
			Subsystem: "deid",
			Name:      "placeholders_total",
			Help:      "Placeholders emitted, by redaction category",
		}, []string{"category"}),
		pipelineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notomd",
			Subsystem: "deid",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of one document through the pipeline",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.documentsTotal, m.placeholdersTotal, m.pipelineLatency)
	return m
}

func (m *RedactionMetrics) ObserveDocument(mode string) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(mode).Inc()
}

func (m *RedactionMetrics) ObservePlaceholders(category string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.placeholdersTotal.WithLabelValues(category).Add(float64(n))
}

func (m *RedactionMetrics) ObserveLatency(mode string, seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.WithLabelValues(mode).Observe(seconds)
}
