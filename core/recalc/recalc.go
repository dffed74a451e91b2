package recalc

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tallerix/scheduling/core/estimate"
	"github.com/tallerix/scheduling/core/logger"
	"github.com/tallerix/scheduling/core/metrics"
	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/internal/eventbus"
)

// DefaultDebounce matches the interval the UI uses between bursts of item
// toggles.
const DefaultDebounce = 300 * time.Millisecond

// Request describes one recalculation trigger: the order's current items,
// the selected technician and support set, and the creation instant owned
// by the caller.
type Request struct {
	OrderID      string
	TechnicianID string
	Items        []model.OrderItem
	Support      []model.SupportTechnician
	CreatedAt    time.Time
}

// Update is published after a computation finishes. Stale computations are
// discarded before publication, so subscribers only ever see results of
// the latest issued request.
type Update struct {
	RequestID  string
	Generation uint64
	OrderID    string
	Estimate   model.DeliveryEstimate
	Degraded   bool
	Err        error
}

// Recalculator debounces recalculation triggers and guarantees that only
// the result of the most recent input set is ever applied. Supersession
// uses a per-order monotonically increasing generation: a computation's
// result is applied only if its generation is still the latest issued for
// that order.
type Recalculator struct {
	planner  *estimate.Planner
	bus      *eventbus.Bus[Update]
	sink     metrics.MetricsSink
	log      logger.Logger
	debounce time.Duration

	mu      sync.Mutex
	issued  map[string]uint64
	pending map[string]*pendingRequest
	latest  map[string]model.DeliveryEstimate
	wg      sync.WaitGroup
}

type pendingRequest struct {
	timer *time.Timer
	req   Request
}

// New creates a Recalculator. A non-positive debounce falls back to
// DefaultDebounce; nil sink and log fall back to no-ops.
func New(planner *estimate.Planner, sink metrics.MetricsSink, log logger.Logger, debounce time.Duration) *Recalculator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Recalculator{
		planner:  planner,
		bus:      eventbus.New[Update](),
		sink:     sink,
		log:      log,
		debounce: debounce,
		issued:   make(map[string]uint64),
		pending:  make(map[string]*pendingRequest),
		latest:   make(map[string]model.DeliveryEstimate),
	}
}

// Subscribe returns a channel of applied updates.
func (r *Recalculator) Subscribe() <-chan Update { return r.bus.Subscribe() }

// Unsubscribe releases a subscriber channel.
func (r *Recalculator) Unsubscribe(ch <-chan Update) { r.bus.Unsubscribe(ch) }

// Submit schedules a recalculation for the request's order. Rapid
// successive submissions for the same order collapse into one computation
// carrying the last submitted inputs.
func (r *Recalculator) Submit(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pending[req.OrderID]; ok {
		p.req = req
		p.timer.Reset(r.debounce)
		return
	}
	p := &pendingRequest{req: req}
	p.timer = time.AfterFunc(r.debounce, func() { r.fire(req.OrderID) })
	r.pending[req.OrderID] = p
}

// fire promotes the pending request to a computation with a freshly issued
// generation.
func (r *Recalculator) fire(orderID string) {
	r.mu.Lock()
	p, ok := r.pending[orderID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pending, orderID)
	r.issued[orderID]++
	gen := r.issued[orderID]
	req := p.req
	r.wg.Add(1)
	r.mu.Unlock()

	go r.compute(gen, req)
}

func (r *Recalculator) compute(gen uint64, req Request) {
	defer r.wg.Done()
	start := time.Now()
	out, err := r.planner.Estimate(context.Background(), req.Items, req.TechnicianID, req.Support, req.CreatedAt)

	r.mu.Lock()
	stale := gen != r.issued[req.OrderID]
	if !stale && err == nil {
		r.latest[req.OrderID] = out.Estimate
	}
	r.mu.Unlock()

	if stale {
		if r.log != nil {
			r.log.Debugf("discarding stale estimate for order %s (generation %d)", req.OrderID, gen)
		}
		return
	}

	ev := metrics.EstimateEvent{
		OrderID:             req.OrderID,
		TechnicianID:        req.TechnicianID,
		SupportCount:        len(req.Support),
		Degraded:            out.Degraded,
		WorkloadHours:       out.WorkloadHours,
		Duration:            time.Since(start),
		Time:                time.Now(),
		EffectiveHours:      out.Estimate.EffectiveHours,
		SharedServicesCount: out.Estimate.SharedServicesCount,
		CanUseSharedTime:    out.Estimate.CanUseSharedTime,
		DeliveryAt:          out.Estimate.DeliveryAt,
	}
	if err != nil {
		ev.Error = err.Error()
		if r.log != nil {
			r.log.Errorf("estimate for order %s failed: %v", req.OrderID, err)
		}
	}
	if serr := r.sink.RecordEstimate(ev); serr != nil && r.log != nil {
		r.log.Warnf("record estimate metrics: %v", serr)
	}

	// The sink write may block; a newer generation can be issued and even
	// finish in the meantime. Re-check under the lock and publish while
	// still holding it (Publish never blocks) so a superseded result can
	// never reach subscribers after the newer one.
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.issued[req.OrderID] {
		if r.log != nil {
			r.log.Debugf("discarding stale estimate for order %s (generation %d)", req.OrderID, gen)
		}
		return
	}

	r.bus.Publish(Update{
		RequestID:  uuid.NewString(),
		Generation: gen,
		OrderID:    req.OrderID,
		Estimate:   out.Estimate,
		Degraded:   out.Degraded,
		Err:        err,
	})
}

// Latest returns the last successfully applied estimate for the order.
// It is preserved across failed recalculations so the UI can keep showing
// it next to an error indicator.
func (r *Recalculator) Latest(orderID string) (model.DeliveryEstimate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	est, ok := r.latest[orderID]
	return est, ok
}

// Flush fires all pending requests immediately, bypassing the debounce.
func (r *Recalculator) Flush() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.pending))
	for id, p := range r.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.fire(id)
	}
}

// Close waits for in-flight computations and closes the bus.
func (r *Recalculator) Close() {
	r.mu.Lock()
	for id, p := range r.pending {
		p.timer.Stop()
		delete(r.pending, id)
	}
	r.mu.Unlock()
	r.wg.Wait()
	r.bus.Close()
}
