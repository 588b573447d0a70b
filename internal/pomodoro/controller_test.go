package pomodoro

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/studysync/internal/store"
)

var fixedNow = time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, settings store.PomodoroSettings) (*store.Store, *Controller) {
	t.Helper()
	initial := store.DefaultState()
	initial.Pomodoro = settings
	s := store.New(initial)
	n := 0
	c := NewController(s,
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { n++; return fmt.Sprintf("session-%d", n) }),
	)
	t.Cleanup(c.Close)
	return s, c
}

// runInterval starts the controller and ticks until the next boundary.
func runInterval(t *testing.T, c *Controller) Transition {
	t.Helper()
	c.Start()
	for i := 0; i < 24*60*60; i++ {
		if tr := c.Tick(); tr.Kind != NoTransition {
			return tr
		}
	}
	t.Fatal("no transition within a day of ticks")
	return Transition{}
}

func TestWorkIntervalRecordsOneSession(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	c.SetLabel("Calculus")
	c.Start()

	var transitions []Transition
	for i := 0; i < 1500; i++ {
		if tr := c.Tick(); tr.Kind != NoTransition {
			transitions = append(transitions, tr)
		}
	}

	require.Len(t, transitions, 1)
	assert.Equal(t, WorkCompleted, transitions[0].Kind)

	cycle := c.Cycle()
	assert.Equal(t, ModeBreak, cycle.Mode)
	assert.False(t, cycle.Running)
	assert.Equal(t, 5*60, cycle.Remaining)

	sessions := s.State().Sessions
	require.Len(t, sessions, 1)
	assert.Equal(t, store.StudySession{
		ID:       "session-1",
		Duration: 25,
		Subject:  "Calculus",
		Date:     fixedNow,
	}, sessions[0])
}

func TestStaysInWorkBeforeLastTick(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	c.Start()
	for i := 0; i < 1499; i++ {
		c.Tick()
	}
	assert.Equal(t, ModeWork, c.Cycle().Mode)
	assert.Equal(t, 1, c.Cycle().Remaining)
	assert.Empty(t, s.State().Sessions)
}

func TestPausedControllerDoesNotCount(t *testing.T) {
	_, c := newTestController(t, store.DefaultSettings())
	c.Start()
	c.Tick()
	c.Pause()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.Equal(t, 1499, c.Cycle().Remaining)

	c.Toggle()
	assert.True(t, c.Cycle().Running)
	c.Toggle()
	assert.False(t, c.Cycle().Running)
}

func TestEveryFourthSessionGetsLongBreak(t *testing.T) {
	settings := store.PomodoroSettings{WorkDuration: 1, BreakDuration: 1, LongBreakDuration: 2}
	s, c := newTestController(t, settings)

	var longs []bool
	for i := 0; i < 8; i++ {
		work := runInterval(t, c)
		require.Equal(t, WorkCompleted, work.Kind)
		longs = append(longs, work.LongBreak)
		assert.Equal(t, work.LongBreak, c.Cycle().LongBreak)

		brk := runInterval(t, c)
		require.Equal(t, BreakCompleted, brk.Kind)
		assert.Equal(t, ModeWork, c.Cycle().Mode)
	}

	assert.Equal(t, []bool{false, false, false, true, false, false, false, true}, longs)
	assert.Len(t, s.State().Sessions, 8)
	assert.Equal(t, 8, c.Completed())
}

func TestCadenceFollowsSessionHistory(t *testing.T) {
	settings := store.PomodoroSettings{WorkDuration: 1, BreakDuration: 1, LongBreakDuration: 2}
	initial := store.DefaultState()
	initial.Pomodoro = settings
	for i := 0; i < 3; i++ {
		initial.Sessions = append(initial.Sessions, store.StudySession{ID: fmt.Sprint(i), Duration: 1})
	}
	s := store.New(initial)
	c := NewController(s)
	defer c.Close()

	tr := runInterval(t, c)
	assert.True(t, tr.LongBreak, "fourth session overall ends in a long break")
	assert.Equal(t, 2*60, c.Cycle().Remaining)
}

func TestReset(t *testing.T) {
	_, c := newTestController(t, store.DefaultSettings())
	runInterval(t, c)
	require.Equal(t, ModeBreak, c.Cycle().Mode)
	c.Start()
	c.Tick()

	c.Reset()
	cycle := c.Cycle()
	assert.Equal(t, ModeWork, cycle.Mode)
	assert.Equal(t, 1500, cycle.Remaining)
	assert.False(t, cycle.Running)
	assert.Equal(t, 1, c.Completed(), "reset keeps the session history")
}

func TestUpdateSettingsResets(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	c.Start()
	c.Tick()

	require.NoError(t, c.UpdateSettings(store.SettingsPatch{WorkDuration: store.IntPtr(50)}))

	cycle := c.Cycle()
	assert.Equal(t, ModeWork, cycle.Mode)
	assert.Equal(t, 3000, cycle.Remaining)
	assert.Equal(t, 3000, cycle.Total)
	assert.False(t, cycle.Running)
	assert.Equal(t, 5, s.State().Pomodoro.BreakDuration)
}

func TestSettingsDispatchedElsewhereReset(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	c.Start()
	c.Tick()

	s.Dispatch(store.UpdatePomodoroSettings{Patch: store.SettingsPatch{BreakDuration: store.IntPtr(10)}})
	assert.Equal(t, 1500, c.Cycle().Remaining)
	assert.False(t, c.Cycle().Running)

	// unrelated actions leave the timer alone
	c.Start()
	c.Tick()
	s.Dispatch(store.ToggleTheme{})
	assert.Equal(t, 1499, c.Cycle().Remaining)
	assert.True(t, c.Cycle().Running)
}

func TestUpdateSettingsRejectsNonPositive(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	err := c.UpdateSettings(store.SettingsPatch{BreakDuration: store.IntPtr(0)})
	assert.ErrorIs(t, err, store.ErrValidation)
	assert.Equal(t, store.DefaultSettings(), s.State().Pomodoro)
}

func TestCloseStopsListening(t *testing.T) {
	s, c := newTestController(t, store.DefaultSettings())
	c.Close()
	c.Start()
	s.Dispatch(store.UpdatePomodoroSettings{Patch: store.SettingsPatch{WorkDuration: store.IntPtr(10)}})
	assert.True(t, c.Cycle().Running)
	c.Close()
}

func TestLabel(t *testing.T) {
	_, c := newTestController(t, store.DefaultSettings())
	assert.Equal(t, DefaultLabel, c.Label())
	c.SetLabel("  Chemistry ")
	assert.Equal(t, "Chemistry", c.Label())
	c.SetLabel("")
	assert.Equal(t, DefaultLabel, c.Label())
}

func TestRunConsumesTicks(t *testing.T) {
	settings := store.PomodoroSettings{WorkDuration: 1, BreakDuration: 1, LongBreakDuration: 1}
	s, c := newTestController(t, settings)
	c.Start()

	ticks := make(chan time.Time, 61)
	for i := 0; i < 61; i++ {
		ticks <- fixedNow
	}
	close(ticks)

	var seen []Transition
	err := c.Run(context.Background(), ticks, func(tr Transition) { seen = append(seen, tr) })
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, WorkCompleted, seen[0].Kind)
	assert.Len(t, s.State().Sessions, 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	_, c := newTestController(t, store.DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, make(chan time.Time), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
