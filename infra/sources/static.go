package sources

import (
	"context"
	"sync"

	"github.com/tallerix/scheduling/core/model"
)

// StaticSchedules is an in-memory schedule source keyed by technician id.
// Technicians without an entry fall through to the engine's default
// schedule resolution.
type StaticSchedules struct {
	mu        sync.RWMutex
	schedules map[string]model.WorkSchedule
}

// NewStaticSchedules creates a source from the given map. A nil map is
// allowed and yields an empty source.
func NewStaticSchedules(schedules map[string]model.WorkSchedule) *StaticSchedules {
	if schedules == nil {
		schedules = make(map[string]model.WorkSchedule)
	}
	return &StaticSchedules{schedules: schedules}
}

// Set configures the schedule for a technician.
func (s *StaticSchedules) Set(technicianID string, sched model.WorkSchedule) {
	s.mu.Lock()
	s.schedules[technicianID] = sched
	s.mu.Unlock()
}

// Schedule implements estimate.ScheduleSource.
func (s *StaticSchedules) Schedule(_ context.Context, technicianID string) (model.WorkSchedule, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sched, ok := s.schedules[technicianID]
	return sched, ok, nil
}

// StaticWorkloads is an in-memory workload source keyed by technician id.
// Unknown technicians report zero committed hours.
type StaticWorkloads struct {
	mu    sync.RWMutex
	hours map[string]float64
}

// NewStaticWorkloads creates a source from the given map.
func NewStaticWorkloads(hours map[string]float64) *StaticWorkloads {
	if hours == nil {
		hours = make(map[string]float64)
	}
	return &StaticWorkloads{hours: hours}
}

// Set records the committed hours for a technician.
func (s *StaticWorkloads) Set(technicianID string, hours float64) {
	s.mu.Lock()
	s.hours[technicianID] = hours
	s.mu.Unlock()
}

// CommittedHours implements workload.Source.
func (s *StaticWorkloads) CommittedHours(_ context.Context, technicianID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hours[technicianID], nil
}
