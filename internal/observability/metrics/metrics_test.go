package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveOutcome(OutcomeSent)
	m.ObserveOutcome(OutcomeSent)
	m.ObserveOutcome(OutcomeInvalid)
	m.ObserveSendDuration("mailjet", 0.25)

	if got := testutil.ToFloat64(m.relayedTotal.WithLabelValues(OutcomeSent)); got != 2 {
		t.Fatalf("expected 2 sent, got %v", got)
	}
	if got := testutil.ToFloat64(m.relayedTotal.WithLabelValues(OutcomeInvalid)); got != 1 {
		t.Fatalf("expected 1 invalid, got %v", got)
	}
	if got := testutil.CollectAndCount(m.sendDuration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveOutcome(OutcomeTransportError)
	m.ObserveSendDuration("mailjet", 0.1)
}
