package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/tallerix/scheduling/core/metrics"
)

func TestPromSinkRecordsEstimate(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	ev := coremetrics.EstimateEvent{
		OrderID:          "o1",
		EffectiveHours:   4.4,
		CanUseSharedTime: true,
		Duration:         12 * time.Millisecond,
		Time:             time.Now(),
	}
	if err := sink.RecordEstimate(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordEstimate(ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	ps := sink.(*PromSink)
	got := testutil.ToFloat64(ps.estimates.WithLabelValues("false", "true", "false"))
	if got != 2 {
		t.Fatalf("expected 2 estimates got %v", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

type failSink struct{}

func (failSink) RecordEstimate(coremetrics.EstimateEvent) error {
	return errFail
}

var errFail = &recordError{}

type recordError struct{}

func (*recordError) Error() string { return "record failed" }

func TestMultiSinkForwardsAndStopsOnError(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	multi := NewMultiSink(prom, failSink{})
	if err := multi.RecordEstimate(coremetrics.EstimateEvent{}); err == nil {
		t.Fatal("expected error from failing sink")
	}
}
