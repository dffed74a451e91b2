// Package estimate computes workload-aware delivery dates for service
// orders. It aggregates an order's remaining demand, applies shared-time
// concurrency and support-technician reductions, and walks the primary
// technician's calendar from the creation instant through the backlog and
// the effective hours.
package estimate
