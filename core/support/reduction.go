package support

import (
	"errors"
	"fmt"

	"github.com/tallerix/scheduling/core/model"
)

// Reduction percentages are bounded so a helper never halves more than the
// work remaining after previous helpers.
const (
	MinReduction = 1
	MaxReduction = 50
)

// ErrInvalidReduction marks a support percentage outside [1,50]. The UI
// validates at entry, so the engine rejects instead of clamping to avoid
// masking configuration bugs.
var ErrInvalidReduction = errors.New("support reduction percentage out of range")

// Apply chains each helper's reduction multiplicatively over the remaining
// hours. Sequential stacking models diminishing returns and keeps the
// result strictly positive no matter how many helpers are added.
func Apply(baseHours float64, techs []model.SupportTechnician) (float64, error) {
	reduced := baseHours
	for _, t := range techs {
		if t.ReductionPercentage < MinReduction || t.ReductionPercentage > MaxReduction {
			return 0, fmt.Errorf("%w: technician %s has %.1f%%", ErrInvalidReduction, t.TechnicianID, t.ReductionPercentage)
		}
		reduced *= 1 - t.ReductionPercentage/100
	}
	return reduced, nil
}

// GoverningSchedule picks the calendar that drives the walk. Support
// technicians only shrink the hours figure; the primary technician's
// schedule always governs which days are used, even when helpers have
// their own schedules.
func GoverningSchedule(primary model.WorkSchedule, _ []model.SupportTechnician) model.WorkSchedule {
	return primary
}
