package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRedactionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRedactionMetrics(reg)
	m.ObserveDocument("full")
	m.ObservePlaceholders("NAME", 3)
	m.ObserveLatency("safety_net", 0.002)
}

func TestRedactionMetricsSkipsZeroCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRedactionMetrics(reg)
	m.ObservePlaceholders("EMAIL", 0)
	m.ObservePlaceholders("EMAIL", -1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == "notomd_deid_placeholders_total" && len(fam.GetMetric()) > 0 {
			t.Fatalf("expected no placeholder series, got %d", len(fam.GetMetric()))
		}
	}
}

func TestRedactionMetricsNilSafe(t *testing.T) {
	var m *RedactionMetrics
	m.ObserveDocument("full")
	m.ObservePlaceholders("NAME", 1)
	m.ObserveLatency("full", 0.1)
}
