package mqtt

import (
	"errors"
	"sync"

	"github.com/tallerix/scheduling/core/model"
)

// MockPublisher records published estimates for tests.
type MockPublisher struct {
	mu        sync.Mutex
	Estimates map[string]model.DeliveryEstimate
	Fail      bool
	FailErr   error
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Estimates: make(map[string]model.DeliveryEstimate)}
}

// PublishEstimate stores the estimate or fails when configured to.
func (m *MockPublisher) PublishEstimate(orderID string, est model.DeliveryEstimate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		if m.FailErr != nil {
			return m.FailErr
		}
		return errors.New("publish failed")
	}
	m.Estimates[orderID] = est
	return nil
}

// Published returns the last estimate recorded for the order.
func (m *MockPublisher) Published(orderID string) (model.DeliveryEstimate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	est, ok := m.Estimates[orderID]
	return est, ok
}
