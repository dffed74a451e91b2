package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tallerix/scheduling/core/metrics"
)

// PromSink records delivery estimates in Prometheus metrics.
type PromSink struct {
	estimates *prometheus.CounterVec
	duration  prometheus.Histogram
	effective prometheus.Histogram
}

// NewPromSink registers estimate metrics on the default Prometheus
// registerer. The Prometheus server is started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_estimates_total",
		Help: "Total number of delivery estimate calculations",
	}, []string{"degraded", "shared_time", "failed"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_estimate_duration_seconds",
		Help:    "Time spent computing a delivery estimate",
		Buckets: prometheus.DefBuckets,
	})
	effective := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_estimate_effective_hours",
		Help:    "Effective working hours of computed estimates",
		Buckets: []float64{0.5, 1, 2, 4, 8, 16, 40, 80, 160},
	})

	if err := reg.Register(estimates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			estimates = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(effective); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			effective = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{estimates: estimates, duration: duration, effective: effective}, nil
}

// RecordEstimate increments the estimate counter and observes durations.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimates.WithLabelValues(
		strconv.FormatBool(ev.Degraded),
		strconv.FormatBool(ev.CanUseSharedTime),
		strconv.FormatBool(ev.Error != ""),
	).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	if ev.Error == "" {
		s.effective.Observe(ev.EffectiveHours)
	}
	return nil
}
