// Package calendar advances timestamps across a technician's recurring
// weekly availability, consuming working hours while skipping non-work
// days and accounting for the daily break.
package calendar
