package model

import (
	"fmt"
	"time"
)

// ClockTime is a time-of-day without a date, used to bound the daily
// working window of a technician.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses a "HH:MM" string into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	var c ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	return c, nil
}

// Minutes returns the clock time as minutes since midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is earlier than o.
func (c ClockTime) Before(o ClockTime) bool { return c.Minutes() < o.Minutes() }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// MarshalText encodes the clock time as "HH:MM".
func (c ClockTime) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a "HH:MM" string.
func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// On anchors the clock time on the date of t, keeping t's location.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// WorkSchedule describes a technician's recurring weekly availability.
// BreakMinutes is a single daily break subtracted from the day's capacity.
type WorkSchedule struct {
	WorkDays     []time.Weekday `json:"work_days"`
	Start        ClockTime      `json:"start_time"`
	End          ClockTime      `json:"end_time"`
	BreakMinutes int            `json:"break_duration_minutes"`
}

// DefaultSchedule returns the fallback availability used when a technician
// has no configured schedule: Monday to Friday, 08:00-16:00, no break.
func DefaultSchedule() WorkSchedule {
	return WorkSchedule{
		WorkDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Start:    ClockTime{Hour: 8},
		End:      ClockTime{Hour: 16},
	}
}

// Validate checks that the schedule can yield working time. An empty
// work-day set or an inverted window makes every walk impossible.
func (s WorkSchedule) Validate() error {
	if len(s.WorkDays) == 0 {
		return fmt.Errorf("%w: empty work_days", ErrInvalidSchedule)
	}
	for _, d := range s.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidSchedule, d)
		}
	}
	if !s.Start.Before(s.End) {
		return fmt.Errorf("%w: start_time %s must precede end_time %s", ErrInvalidSchedule, s.Start, s.End)
	}
	if s.BreakMinutes < 0 {
		return fmt.Errorf("%w: negative break duration", ErrInvalidSchedule)
	}
	if float64(s.BreakMinutes) >= s.WindowMinutes() {
		return fmt.Errorf("%w: break of %dmin consumes the whole %.0fmin window",
			ErrInvalidSchedule, s.BreakMinutes, s.WindowMinutes())
	}
	return nil
}

// IsWorkDay reports whether d belongs to the schedule's work days.
func (s WorkSchedule) IsWorkDay(d time.Weekday) bool {
	for _, wd := range s.WorkDays {
		if wd == d {
			return true
		}
	}
	return false
}

// WindowMinutes is the clock length of the daily window, break included.
func (s WorkSchedule) WindowMinutes() float64 {
	return float64(s.End.Minutes() - s.Start.Minutes())
}

// DailyCapacityHours is the net working capacity of a full work day.
func (s WorkSchedule) DailyCapacityHours() float64 {
	return (s.WindowMinutes() - float64(s.BreakMinutes)) / 60
}
