package model

import "time"

// DeliveryEstimate is the result of a delivery date calculation.
type DeliveryEstimate struct {
	// DeliveryAt is the instant the last working hour elapses. Its date
	// component is the delivery date, its clock component the delivery time.
	DeliveryAt          time.Time `json:"delivery_at"`
	EffectiveHours      float64   `json:"effective_hours"`
	Breakdown           string    `json:"breakdown"`
	CanUseSharedTime    bool      `json:"can_use_shared_time"`
	SharedServicesCount int       `json:"shared_services_count"`
}

// DeliveryDate formats the calendar date component.
func (e DeliveryEstimate) DeliveryDate() string { return e.DeliveryAt.Format("2006-01-02") }

// DeliveryTime formats the clock time component.
func (e DeliveryEstimate) DeliveryTime() string { return e.DeliveryAt.Format("15:04") }
