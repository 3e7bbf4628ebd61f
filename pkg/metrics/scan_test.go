package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestScanJobMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScanJobMetrics(reg)

	m.IncSuccess("low-stock")
	m.IncSuccess("low-stock")
	m.IncFailure("invoice-approval")
	m.ObserveDuration("low-stock", 120*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("low-stock")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("invoice-approval")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestScanJobMetricsNilSafe(t *testing.T) {
	var m *ScanJobMetrics
	m.IncSuccess("low-stock")
	m.IncFailure("low-stock")
	m.ObserveDuration("low-stock", time.Second)

	empty := NewScanJobMetrics(nil)
	empty.IncSuccess("low-stock")
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel("  Invoice Approval "); got != "invoice_approval" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := normalizeLabel(""); got != "unknown" {
		t.Fatalf("unexpected label %q", got)
	}
}
