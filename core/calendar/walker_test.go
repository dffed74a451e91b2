package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/tallerix/scheduling/core/model"
)

func weekdaySchedule() model.WorkSchedule {
	return model.WorkSchedule{
		WorkDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Start:    model.ClockTime{Hour: 8},
		End:      model.ClockTime{Hour: 16},
	}
}

// Monday 2025-01-06 is used as the anchor week throughout.
func monday(hour, min int) time.Time {
	return time.Date(2025, 1, 6, hour, min, 0, 0, time.UTC)
}

func TestAdvanceSameDay(t *testing.T) {
	got, err := Advance(monday(9, 0), 4, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	want := monday(13, 0)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestAdvanceRollsOverWeekend(t *testing.T) {
	friday := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	got, err := Advance(friday, 4, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	// 1h Friday 15:00-16:00, 3h Monday 08:00-11:00.
	want := time.Date(2025, 1, 13, 11, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestAdvanceExactDayCapacity(t *testing.T) {
	got, err := Advance(monday(8, 0), 8, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !got.Equal(monday(16, 0)) {
		t.Fatalf("expected end of Monday got %v", got)
	}
}

func TestAdvanceMultipleDays(t *testing.T) {
	got, err := Advance(monday(8, 0), 10, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	// 8h Monday, 2h Tuesday 08:00-10:00.
	want := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestAdvanceZeroHoursSnapsToWindow(t *testing.T) {
	sunday := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	got, err := Advance(sunday, 0, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !got.Equal(monday(8, 0)) {
		t.Fatalf("expected Monday start got %v", got)
	}
}

func TestAdvanceZeroHoursInsideWindow(t *testing.T) {
	got, err := Advance(monday(9, 30), 0, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !got.Equal(monday(9, 30)) {
		t.Fatalf("cursor moved: %v", got)
	}
}

func TestAdvanceAfterHoursStartsNextDay(t *testing.T) {
	got, err := Advance(monday(17, 0), 2, weekdaySchedule())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	want := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestAdvanceBreakReducesCapacity(t *testing.T) {
	sched := weekdaySchedule()
	sched.BreakMinutes = 60
	// 7h of net capacity per day: 7h from Monday 08:00 land at 16:00.
	got, err := Advance(monday(8, 0), 7, sched)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !got.Equal(monday(16, 0)) {
		t.Fatalf("expected 16:00 got %v", got)
	}
	// An eighth hour rolls to Tuesday.
	got, err = Advance(monday(8, 0), 8, sched)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got.Day() != 7 {
		t.Fatalf("expected Tuesday got %v", got)
	}
}

func TestAdvancePartialDaysCompose(t *testing.T) {
	sched := weekdaySchedule()
	sched.BreakMinutes = 30
	mid, err := Advance(monday(8, 0), 3, sched)
	if err != nil {
		t.Fatalf("first leg: %v", err)
	}
	composed, err := Advance(mid, 4.5, sched)
	if err != nil {
		t.Fatalf("second leg: %v", err)
	}
	direct, err := Advance(monday(8, 0), 7.5, sched)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	if d := composed.Sub(direct); d > time.Second || d < -time.Second {
		t.Fatalf("composed %v != direct %v", composed, direct)
	}
}

func TestAdvanceInvalidSchedule(t *testing.T) {
	_, err := Advance(monday(8, 0), 1, model.WorkSchedule{})
	if !errors.Is(err, model.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule got %v", err)
	}
	inverted := weekdaySchedule()
	inverted.Start, inverted.End = inverted.End, inverted.Start
	if _, err := Advance(monday(8, 0), 1, inverted); !errors.Is(err, model.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule got %v", err)
	}
}

func TestAdvanceNegativeHours(t *testing.T) {
	if _, err := Advance(monday(8, 0), -1, weekdaySchedule()); err == nil {
		t.Fatal("expected error")
	}
}

func TestAdvanceTerminationGuard(t *testing.T) {
	// 3650 days of 8h each cannot absorb this.
	_, err := Advance(monday(8, 0), 1e6, weekdaySchedule())
	if !errors.Is(err, ErrWalkExceeded) {
		t.Fatalf("expected ErrWalkExceeded got %v", err)
	}
}
