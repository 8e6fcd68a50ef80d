package clock

import (
	"time"

	"github.com/julianstephens/secondwind/internal/constants"
)

// Clock abstracts the wall clock so day-boundary logic can be driven by a
// fixed time in tests.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to a single instant. Advance it between assertions
// to simulate day rollovers.
type Fixed struct {
	Time time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Time
}

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}

// Day formats an instant as a calendar-day string in the local timezone.
func Day(t time.Time) string {
	return t.Format(constants.DayFormat)
}

// Today returns the current calendar day of c.
func Today(c Clock) string {
	return Day(c.Now())
}

// Yesterday returns the calendar day immediately before c's current day.
func Yesterday(c Clock) string {
	return Day(c.Now().AddDate(0, 0, -1))
}
