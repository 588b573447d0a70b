// Package pomodoro implements the work/break countdown cycle and the
// controller that records completed work intervals in a store.
package pomodoro

import (
	"fmt"

	"github.com/sadopc/studysync/internal/store"
)

type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
)

func (m Mode) String() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeBreak:
		return "Break"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LongBreakEvery is the number of work intervals per long break.
const LongBreakEvery = 4

// Cycle is the countdown state. Remaining and Total are in seconds.
type Cycle struct {
	Mode      Mode
	Remaining int
	Total     int
	LongBreak bool
	Running   bool
}

// NewCycle returns a stopped work interval of the configured length.
func NewCycle(s store.PomodoroSettings) Cycle {
	return workCycle(s)
}

func workCycle(s store.PomodoroSettings) Cycle {
	secs := s.WorkDuration * 60
	return Cycle{Mode: ModeWork, Remaining: secs, Total: secs}
}

func breakCycle(s store.PomodoroSettings, long bool) Cycle {
	secs := s.BreakDuration * 60
	if long {
		secs = s.LongBreakDuration * 60
	}
	return Cycle{Mode: ModeBreak, Remaining: secs, Total: secs, LongBreak: long}
}

// Progress is the completed fraction of the current interval, in [0, 1].
func (c Cycle) Progress() float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Total-c.Remaining) / float64(c.Total)
}

// Label names the current interval for display.
func (c Cycle) Label() string {
	switch {
	case c.Mode == ModeWork:
		return "Focus Time"
	case c.LongBreak:
		return "Long Break"
	default:
		return "Short Break"
	}
}

type TransitionKind int

const (
	NoTransition TransitionKind = iota
	WorkCompleted
	BreakCompleted
)

// Transition describes an interval boundary crossed by a tick.
type Transition struct {
	Kind      TransitionKind
	LongBreak bool // the break that follows a completed work interval is long
}

// Advance applies one tick to c. completed is the number of work intervals
// finished before this tick; it selects the length of the break that
// follows a work interval. Crossing a boundary always stops the cycle.
func Advance(c Cycle, s store.PomodoroSettings, completed int) (Cycle, Transition) {
	if c.Running && c.Remaining > 0 {
		c.Remaining--
	}
	if c.Remaining > 0 {
		return c, Transition{}
	}

	switch c.Mode {
	case ModeWork:
		long := completed%LongBreakEvery == LongBreakEvery-1
		return breakCycle(s, long), Transition{Kind: WorkCompleted, LongBreak: long}
	default:
		return workCycle(s), Transition{Kind: BreakCompleted}
	}
}

// FormatClock renders seconds as MM:SS.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
