package estimate

import (
	"fmt"
	"time"

	"github.com/tallerix/scheduling/core/calendar"
	"github.com/tallerix/scheduling/core/logger"
	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/core/sharedtime"
	"github.com/tallerix/scheduling/core/support"
	"github.com/tallerix/scheduling/core/workload"
)

// Input carries everything a single calculation needs. The caller owns
// "now": CreatedAt is explicit so identical inputs always produce an
// identical estimate.
type Input struct {
	Items         []model.OrderItem
	Schedule      model.WorkSchedule
	Support       []model.SupportTechnician
	CreatedAt     time.Time
	WorkloadHours float64
}

// Estimator computes delivery dates from order demand, a technician's
// calendar and their committed backlog. It holds no mutable state and is
// safe for concurrent use.
type Estimator struct {
	resolver sharedtime.Resolver
	log      logger.Logger
}

// New creates an Estimator. A zero sharedCap keeps the default concurrency
// cap of three.
func New(log logger.Logger, sharedCap int) *Estimator {
	return &Estimator{resolver: sharedtime.Resolver{Cap: sharedCap}, log: log}
}

// Estimate derives the delivery date and time for the given input.
//
// The technician's backlog is burned off first, then the order's effective
// hours are walked across the same calendar. The returned breakdown traces
// every step of the derivation for display next to the date.
func (e *Estimator) Estimate(in Input) (model.DeliveryEstimate, error) {
	if err := in.Schedule.Validate(); err != nil {
		return model.DeliveryEstimate{}, err
	}
	for _, it := range in.Items {
		if err := it.Validate(); err != nil {
			return model.DeliveryEstimate{}, err
		}
	}
	if in.CreatedAt.IsZero() {
		return model.DeliveryEstimate{}, fmt.Errorf("creation instant is required")
	}

	offset := workload.Offset(in.WorkloadHours)
	res := e.resolver.Resolve(in.Items)

	effective, err := support.Apply(res.TotalHours(), in.Support)
	if err != nil {
		return model.DeliveryEstimate{}, err
	}

	sched := support.GoverningSchedule(in.Schedule, in.Support)
	cursor, err := calendar.Advance(in.CreatedAt, offset, sched)
	if err != nil {
		return model.DeliveryEstimate{}, fmt.Errorf("burning off backlog: %w", err)
	}
	deliveryAt, err := calendar.Advance(cursor, effective, sched)
	if err != nil {
		return model.DeliveryEstimate{}, fmt.Errorf("walking effective hours: %w", err)
	}

	out := model.DeliveryEstimate{
		DeliveryAt:          deliveryAt,
		EffectiveHours:      effective,
		Breakdown:           buildBreakdown(res, in.Support, e.resolver.Limit(), offset, effective, deliveryAt),
		CanUseSharedTime:    res.CanUseSharedTime,
		SharedServicesCount: res.SharedServicesCount,
	}
	if e.log != nil {
		e.log.Debugf("estimated delivery %s %s (%.2fh effective)", out.DeliveryDate(), out.DeliveryTime(), effective)
	}
	return out, nil
}
