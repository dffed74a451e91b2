package model

import "errors"

// ErrInvalidSchedule marks schedules that can never yield working time:
// an empty work-day set, an inverted window, or a break swallowing the
// whole day. A configured schedule that fails validation is surfaced as
// an error rather than silently replaced by the default.
var ErrInvalidSchedule = errors.New("invalid work schedule")
