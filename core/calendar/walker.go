package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/tallerix/scheduling/core/model"
)

// MaxWalkDays bounds the walk at roughly ten years. A valid schedule always
// terminates well before this; hitting the bound means the requested hours
// can never be consumed and must surface as an error.
const MaxWalkDays = 3650

// ErrWalkExceeded is returned when the walk hits MaxWalkDays without
// consuming all requested hours.
var ErrWalkExceeded = errors.New("calendar walk exceeded maximum simulated days")

// epsilon absorbs float drift when comparing consumed capacity.
const epsilon = 1e-9

// Advance walks forward from start across the schedule's work calendar until
// hours of working time have elapsed, and returns the resulting instant.
//
// Non-work days are skipped. On a work day the capacity between the cursor
// and end_time is the clock span scaled down by the daily break, which is
// modeled as uniformly diluted across the window rather than as a literal
// mid-day gap; partial-day walks therefore compose exactly across calls.
// A zero-hours walk still snaps the cursor to the next working instant, so
// the result always falls inside a work day's window.
func Advance(start time.Time, hours float64, schedule model.WorkSchedule) (time.Time, error) {
	if err := schedule.Validate(); err != nil {
		return time.Time{}, err
	}
	if hours < 0 {
		return time.Time{}, fmt.Errorf("hours to consume must be non-negative, got %.2f", hours)
	}

	remaining := hours
	cur := start
	for day := 0; day <= MaxWalkDays; day++ {
		if !schedule.IsWorkDay(cur.Weekday()) {
			cur = nextDay(cur, schedule)
			continue
		}
		dayStart := schedule.Start.On(cur)
		dayEnd := schedule.End.On(cur)
		if cur.Before(dayStart) {
			cur = dayStart
		}
		if !cur.Before(dayEnd) {
			cur = nextDay(cur, schedule)
			continue
		}
		capacity := capacityFrom(cur, dayEnd, schedule)
		if capacity <= epsilon {
			cur = nextDay(cur, schedule)
			continue
		}
		if remaining <= capacity+epsilon {
			if remaining <= epsilon {
				return cur, nil
			}
			return cur.Add(clockSpan(remaining, schedule)), nil
		}
		remaining -= capacity
		cur = nextDay(cur, schedule)
	}
	return time.Time{}, fmt.Errorf("%w: %.2f working hours left after %d days", ErrWalkExceeded, remaining, MaxWalkDays)
}

// capacityFrom is the net working capacity between cur and the end of the
// day, with the break's share of the remaining window subtracted.
func capacityFrom(cur, dayEnd time.Time, s model.WorkSchedule) float64 {
	span := dayEnd.Sub(cur).Hours()
	window := s.WindowMinutes() / 60
	net := window - float64(s.BreakMinutes)/60
	return span * net / window
}

// clockSpan converts working hours into the clock duration they occupy once
// the diluted break share is added back.
func clockSpan(workingHours float64, s model.WorkSchedule) time.Duration {
	window := s.WindowMinutes() / 60
	net := window - float64(s.BreakMinutes)/60
	return time.Duration(workingHours * window / net * float64(time.Hour))
}

// nextDay moves the cursor to the following calendar day at the schedule's
// start time, preserving the location.
func nextDay(cur time.Time, s model.WorkSchedule) time.Time {
	next := cur.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), s.Start.Hour, s.Start.Minute, 0, 0, cur.Location())
}
