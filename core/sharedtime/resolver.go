package sharedtime

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tallerix/scheduling/core/model"
)

// MaxConcurrent caps how many shared-time items may run at once under a
// single technician.
const MaxConcurrent = 3

// Result aggregates an order's remaining demand into exclusive and shared
// buckets before support reductions are applied.
type Result struct {
	ExclusiveHours      float64
	SharedHours         float64
	SharedServicesCount int
	CanUseSharedTime    bool
}

// TotalHours is the raw demand before support-technician reductions.
func (r Result) TotalHours() float64 { return r.ExclusiveHours + r.SharedHours }

// Resolver partitions order items into shared-capable and exclusive work.
type Resolver struct {
	// Cap overrides MaxConcurrent when positive.
	Cap int
}

// Limit is the effective concurrency cap: Cap when positive, otherwise
// MaxConcurrent.
func (r Resolver) Limit() int {
	if r.Cap > 0 {
		return r.Cap
	}
	return MaxConcurrent
}

// Resolve partitions the remaining items. Exclusive effort is strictly
// additive. Up to cap shared items overlap, so the bottleneck item alone
// determines the shared bucket's elapsed time; shared items beyond the cap
// spill into the exclusive bucket and clear CanUseSharedTime.
func (r Resolver) Resolve(items []model.OrderItem) Result {
	var shared, exclusive []float64
	for _, it := range items {
		if it.Status.Done() {
			continue
		}
		if it.SharedTime {
			shared = append(shared, it.Effort())
		} else {
			exclusive = append(exclusive, it.Effort())
		}
	}

	res := Result{
		ExclusiveHours:   floats.Sum(exclusive),
		CanUseSharedTime: true,
	}
	if len(shared) == 0 {
		return res
	}

	limit := r.Limit()
	if len(shared) <= limit {
		res.SharedHours = floats.Max(shared)
		res.SharedServicesCount = len(shared)
		return res
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(shared)))
	res.SharedHours = shared[0]
	res.SharedServicesCount = limit
	res.ExclusiveHours += floats.Sum(shared[limit:])
	res.CanUseSharedTime = false
	return res
}
