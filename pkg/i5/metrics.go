package i5

import (
	"github.com/prometheus/client_golang/prometheus"
)

// clientMetrics holds the prometheus collectors of a Client. A nil
// receiver disables observation, so metrics stay optional.
type clientMetrics struct {
	submissions *prometheus.CounterVec
	bytesSent   prometheus.Counter
}

// newClientMetrics registers the client collectors with reg.
func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "i5_submissions_total",
				Help: "Total number of Interface5 batch submissions by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		bytesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "i5_submission_bytes_total",
				Help: "Total serialized request bytes posted to Interface5.",
			},
		),
	}

	if err := reg.Register(m.submissions); err != nil {
		return nil, err
	}
	if err := reg.Register(m.bytesSent); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *clientMetrics) observe(mode, outcome string, bodyBytes int) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(mode, outcome).Inc()
	if outcome == "delivered" {
		m.bytesSent.Add(float64(bodyBytes))
	}
}
