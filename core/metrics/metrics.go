package metrics

import "time"

// EstimateEvent captures one delivery-date calculation for observability.
type EstimateEvent struct {
	OrderID             string
	TechnicianID        string
	EffectiveHours      float64
	SharedServicesCount int
	CanUseSharedTime    bool
	SupportCount        int
	WorkloadHours       float64
	// Degraded marks estimates computed with a substituted zero workload
	// after a fetch failure or timeout.
	Degraded   bool
	Duration   time.Duration
	DeliveryAt time.Time
	Time       time.Time
	Error      string
}

// MetricsSink records estimate events for observability purposes.
type MetricsSink interface {
	RecordEstimate(ev EstimateEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error { return nil }
