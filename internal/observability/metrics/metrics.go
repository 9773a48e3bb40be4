package metrics

import "github.com/prometheus/client_golang/prometheus"

// Relay outcomes recorded by LeadMetrics.
const (
	OutcomeSent             = "sent"
	OutcomeProviderError    = "provider_error"
	OutcomeTransportError   = "transport_error"
	OutcomeInvalid          = "invalid"
	OutcomeMethodNotAllowed = "method_not_allowed"
)

// LeadMetrics exposes counters/histograms for the lead relay.
type LeadMetrics struct {
	relayedTotal *prometheus.CounterVec
	sendDuration *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		relayedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "leads",
			Name:      "relayed_total",
			Help:      "Lead submissions handled, by outcome",
		}, []string{"outcome"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadrelay",
			Subsystem: "leads",
			Name:      "send_duration_seconds",
			Help:      "Latency of the outbound email provider call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.relayedTotal, m.sendDuration)
	return m
}

func (m *LeadMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.relayedTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveSendDuration(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.sendDuration.WithLabelValues(provider).Observe(seconds)
}
