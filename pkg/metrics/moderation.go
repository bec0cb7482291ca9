package metrics

import "github.com/prometheus/client_golang/prometheus"

// ModerationMetrics tracks the depth of the review queues.
type ModerationMetrics struct {
	queueDepth *prometheus.GaugeVec
	decisions  *prometheus.CounterVec
}

// NewModerationMetrics registers the moderation metrics on the provided registerer.
func NewModerationMetrics(reg prometheus.Registerer) *ModerationMetrics {
	if reg == nil {
		return &ModerationMetrics{}
	}
	queueDepth := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "moderation_queue_depth",
		Help: "Items waiting for review per queue.",
	}, []string{"queue"})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderation_decisions_total",
		Help: "Review decisions by queue and outcome.",
	}, []string{"queue", "decision"})
	reg.MustRegister(queueDepth, decisions)
	return &ModerationMetrics{
		queueDepth: queueDepth,
		decisions:  decisions,
	}
}

// SetQueueDepth records the current backlog for the named queue.
func (m *ModerationMetrics) SetQueueDepth(queue string, depth int64) {
	if m == nil || m.queueDepth == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(queue)).Set(float64(depth))
}

// IncDecision counts one review decision for the named queue.
func (m *ModerationMetrics) IncDecision(queue, decision string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(queue), normalizeLabel(decision)).Inc()
}
