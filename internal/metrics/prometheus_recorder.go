package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "postserve"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	attempts  *prom.CounterVec
	fallbacks *prom.CounterVec
	duration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		attempts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "source_attempts_total",
			Help:      "Content source attempts by source, operation and result",
		}, []string{"source", "operation", "result"}),
		fallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "source_fallbacks_total",
			Help:      "Times an operation moved on to the next content source",
		}, []string{"operation"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of render and feed operations across the source chain",
			Buckets:   prom.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(pr.attempts, pr.fallbacks, pr.duration)
	return pr
}

func (p *PrometheusRecorder) IncSourceAttempt(source, operation string, result ResultLabel) {
	p.attempts.WithLabelValues(source, operation, string(result)).Inc()
}

func (p *PrometheusRecorder) IncFallback(operation string) {
	p.fallbacks.WithLabelValues(operation).Inc()
}

func (p *PrometheusRecorder) ObserveOperationDuration(operation string, d time.Duration) {
	p.duration.WithLabelValues(operation).Observe(d.Seconds())
}
