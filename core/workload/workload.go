package workload

import (
	"context"
	"time"

	"github.com/tallerix/scheduling/core/logger"
)

// Source supplies a technician's committed, unfinished hours across other
// active orders. Implementations live outside the engine; a technician
// with no other work must yield 0, not an error.
type Source interface {
	CommittedHours(ctx context.Context, technicianID string) (float64, error)
}

// Offset converts a workload snapshot into the prefix of hours the calendar
// walk must burn off before the current order's own work starts. Negative
// backlog is impossible and clamps to zero.
func Offset(snapshotHours float64) float64 {
	if snapshotHours < 0 {
		return 0
	}
	return snapshotHours
}

// DefaultFetchTimeout bounds the workload lookup before the calculation
// proceeds with a zero backlog.
const DefaultFetchTimeout = 5 * time.Second

// Fetch queries the source under a timeout. On error or timeout it returns
// a zero offset and degraded=true so the caller can log and proceed with a
// degraded but available estimate.
func Fetch(ctx context.Context, src Source, technicianID string, timeout time.Duration, log logger.Logger) (hours float64, degraded bool) {
	if src == nil {
		return 0, false
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		hours float64
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		h, err := src.CommittedHours(ctx, technicianID)
		ch <- result{hours: h, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if log != nil {
				log.Warnf("workload fetch for %s failed, assuming zero backlog: %v", technicianID, res.err)
			}
			return 0, true
		}
		return Offset(res.hours), false
	case <-ctx.Done():
		if log != nil {
			log.Warnf("workload fetch for %s timed out after %s, assuming zero backlog", technicianID, timeout)
		}
		return 0, true
	}
}
