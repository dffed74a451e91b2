package estimate

import (
	"context"
	"time"

	"github.com/tallerix/scheduling/core/logger"
	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/core/workload"
)

// Planner is the invocation surface consumed by the application: it
// resolves the technician's schedule and committed workload through the
// external collaborators, then runs the estimator.
type Planner struct {
	Estimator *Estimator
	Schedules ScheduleSource
	Workloads workload.Source
	// WorkloadTimeout bounds the backlog fetch; zero means the default
	// of five seconds.
	WorkloadTimeout time.Duration
	Log             logger.Logger
}

// Outcome wraps an estimate with resolution diagnostics.
type Outcome struct {
	Estimate model.DeliveryEstimate
	Schedule ResolvedSchedule
	// Degraded reports that the workload fetch failed or timed out and a
	// zero backlog was assumed.
	Degraded      bool
	WorkloadHours float64
}

// Estimate resolves collaborators for the technician and computes the
// delivery estimate for the given items.
func (p *Planner) Estimate(ctx context.Context, items []model.OrderItem, technicianID string, techs []model.SupportTechnician, createdAt time.Time) (Outcome, error) {
	resolved, err := ResolveSchedule(ctx, p.Schedules, technicianID)
	if err != nil {
		return Outcome{}, err
	}
	hours, degraded := workload.Fetch(ctx, p.Workloads, technicianID, p.WorkloadTimeout, p.Log)

	est, err := p.Estimator.Estimate(Input{
		Items:         items,
		Schedule:      resolved.Schedule,
		Support:       techs,
		CreatedAt:     createdAt,
		WorkloadHours: hours,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Estimate: est, Schedule: resolved, Degraded: degraded, WorkloadHours: hours}, nil
}
