package estimate

import (
	"context"

	"github.com/tallerix/scheduling/core/model"
)

// ScheduleSource supplies a technician's configured work schedule. The
// second return value reports whether a schedule is configured at all.
type ScheduleSource interface {
	Schedule(ctx context.Context, technicianID string) (model.WorkSchedule, bool, error)
}

// ScheduleOrigin distinguishes a configured schedule from the documented
// fallback, so callers can tell "no schedule configured" apart from a real
// misconfiguration.
type ScheduleOrigin int

const (
	ScheduleConfigured ScheduleOrigin = iota
	ScheduleDefault
)

func (o ScheduleOrigin) String() string {
	if o == ScheduleDefault {
		return "default"
	}
	return "configured"
}

// ResolvedSchedule tags a schedule with where it came from.
type ResolvedSchedule struct {
	Schedule model.WorkSchedule
	Origin   ScheduleOrigin
}

// ResolveSchedule looks up the technician's schedule, falling back to
// model.DefaultSchedule when none is configured. A configured schedule
// that fails validation is an error, never silently replaced: a zero-day
// schedule is a misconfiguration the caller must surface.
func ResolveSchedule(ctx context.Context, src ScheduleSource, technicianID string) (ResolvedSchedule, error) {
	if src == nil {
		return ResolvedSchedule{Schedule: model.DefaultSchedule(), Origin: ScheduleDefault}, nil
	}
	sched, ok, err := src.Schedule(ctx, technicianID)
	if err != nil {
		return ResolvedSchedule{}, err
	}
	if !ok {
		return ResolvedSchedule{Schedule: model.DefaultSchedule(), Origin: ScheduleDefault}, nil
	}
	if err := sched.Validate(); err != nil {
		return ResolvedSchedule{}, err
	}
	return ResolvedSchedule{Schedule: sched, Origin: ScheduleConfigured}, nil
}
