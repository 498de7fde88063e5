package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckinMetrics tracks attendance recording outcomes across the API.
type CheckinMetrics struct {
	recorded *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewCheckinMetrics registers the check-in metrics on the provided registerer.
func NewCheckinMetrics(reg prometheus.Registerer) *CheckinMetrics {
	if reg == nil {
		return &CheckinMetrics{}
	}
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_recorded_total",
		Help: "Attendance entries recorded, labelled by method.",
	}, []string{"method"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_rejected_total",
		Help: "Check-in attempts rejected, labelled by reason.",
	}, []string{"reason"})
	reg.MustRegister(recorded, rejected)
	return &CheckinMetrics{
		recorded: recorded,
		rejected: rejected,
	}
}

// IncRecorded increments the recorded counter for the given method.
func (c *CheckinMetrics) IncRecorded(method string) {
	if c == nil || c.recorded == nil {
		return
	}
	c.recorded.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncRejected increments the rejected counter for the given reason.
func (c *CheckinMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}
