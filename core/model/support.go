package model

// SupportTechnician is an additional technician assisting the primary one.
// Each contributes an independent percentage speed-up on the remaining
// hours; the primary technician's calendar still governs the walk.
type SupportTechnician struct {
	TechnicianID        string  `json:"technician_id"`
	ReductionPercentage float64 `json:"reduction_percentage"`
	// Schedule is the helper's own availability when configured. It is
	// informational only: delivery dates follow the primary calendar.
	Schedule *WorkSchedule `json:"schedule,omitempty"`
}

// WorkloadSnapshot is the primary technician's committed, unfinished hours
// across other active orders at calculation time.
type WorkloadSnapshot struct {
	TechnicianID string  `json:"technician_id"`
	Hours        float64 `json:"hours"`
	// Degraded marks a snapshot substituted after a fetch failure or
	// timeout; the estimate is still produced but flagged.
	Degraded bool `json:"degraded,omitempty"`
}
