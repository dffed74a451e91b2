package model

import "fmt"

// Status is the lifecycle state of an order item. Values follow the
// product's Spanish vocabulary as stored in the backend.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusInProgress Status = "en_proceso"
	StatusCompleted  Status = "completado"
	StatusFinished   Status = "finalizada"
)

// Done reports whether the item no longer contributes remaining work.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusFinished
}

// OrderItem is one billable line of work belonging to a service order.
type OrderItem struct {
	ID             string  `json:"id"`
	ServiceTypeID  string  `json:"service_type_id"`
	EstimatedHours float64 `json:"estimated_hours"`
	Quantity       int     `json:"quantity"`
	// SharedTime marks work that can run concurrently with other shared
	// items, e.g. a test bench cycle running unattended.
	SharedTime bool   `json:"shared_time"`
	Status     Status `json:"status"`
}

// Effort is the total estimated work for the line. A zero or missing
// quantity counts as a single unit.
func (i OrderItem) Effort() float64 {
	qty := i.Quantity
	if qty <= 0 {
		qty = 1
	}
	return i.EstimatedHours * float64(qty)
}

// Validate checks that the item carries a usable effort estimate.
func (i OrderItem) Validate() error {
	if i.EstimatedHours < 0 {
		return fmt.Errorf("item %s: estimated_hours must be non-negative", i.ID)
	}
	return nil
}
