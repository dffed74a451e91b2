package workload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tallerix/scheduling/infra/logger"
)

type stubSource struct {
	hours float64
	err   error
	delay time.Duration
}

func (s stubSource) CommittedHours(ctx context.Context, _ string) (float64, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return s.hours, s.err
}

func TestOffsetClampsNegative(t *testing.T) {
	if got := Offset(-3); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
	if got := Offset(4.5); got != 4.5 {
		t.Fatalf("expected 4.5 got %v", got)
	}
}

func TestFetchReturnsHours(t *testing.T) {
	hours, degraded := Fetch(context.Background(), stubSource{hours: 6}, "t1", time.Second, logger.NopLogger{})
	if degraded || hours != 6 {
		t.Fatalf("expected 6/ok got %v degraded=%v", hours, degraded)
	}
}

func TestFetchClampsNegativeSnapshot(t *testing.T) {
	hours, degraded := Fetch(context.Background(), stubSource{hours: -2}, "t1", time.Second, logger.NopLogger{})
	if degraded || hours != 0 {
		t.Fatalf("expected clamp to 0 got %v degraded=%v", hours, degraded)
	}
}

func TestFetchErrorFallsBackToZero(t *testing.T) {
	hours, degraded := Fetch(context.Background(), stubSource{err: errors.New("boom")}, "t1", time.Second, logger.NopLogger{})
	if !degraded || hours != 0 {
		t.Fatalf("expected degraded zero got %v degraded=%v", hours, degraded)
	}
}

func TestFetchTimeoutFallsBackToZero(t *testing.T) {
	hours, degraded := Fetch(context.Background(), stubSource{hours: 9, delay: 500 * time.Millisecond}, "t1", 20*time.Millisecond, logger.NopLogger{})
	if !degraded || hours != 0 {
		t.Fatalf("expected degraded zero got %v degraded=%v", hours, degraded)
	}
}

func TestFetchNilSource(t *testing.T) {
	hours, degraded := Fetch(context.Background(), nil, "t1", time.Second, logger.NopLogger{})
	if degraded || hours != 0 {
		t.Fatalf("expected 0/ok got %v degraded=%v", hours, degraded)
	}
}
