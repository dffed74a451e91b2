package metrics

import coremetrics "github.com/tallerix/scheduling/core/metrics"

// MultiSink fans estimate events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEstimate forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordEstimate(ev); err != nil {
			return err
		}
	}
	return nil
}
