package pomodoro

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sadopc/studysync/internal/store"
)

// DefaultLabel is the session subject used until SetLabel is called.
const DefaultLabel = "Study Session"

// Store is the part of store.Store the controller needs.
type Store interface {
	Dispatch(store.Action) store.Outcome
	State() store.State
	Subscribe(store.Listener) func()
}

// Controller drives a Cycle and records a StudySession in the store for
// every completed work interval. Applied settings updates reset it.
type Controller struct {
	store Store
	mu    sync.Mutex
	cycle Cycle
	label string

	now         func() time.Time
	newID       func() string
	log         *log.Logger
	unsubscribe func()
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDFunc(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func NewController(s Store, opts ...Option) *Controller {
	c := &Controller{
		store: s,
		cycle: NewCycle(s.State().Pomodoro),
		label: DefaultLabel,
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.unsubscribe = s.Subscribe(c.onDispatch)
	return c
}

func (c *Controller) onDispatch(a store.Action, o store.Outcome, st store.State) {
	if _, ok := a.(store.UpdatePomodoroSettings); !ok || o != store.Applied {
		return
	}
	c.mu.Lock()
	c.cycle = NewCycle(st.Pomodoro)
	c.mu.Unlock()
	c.log.Info("settings changed, timer reset",
		"work", st.Pomodoro.WorkDuration,
		"break", st.Pomodoro.BreakDuration,
		"long_break", st.Pomodoro.LongBreakDuration)
}

// Close detaches the controller from the store.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) Cycle() Cycle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycle
}

func (c *Controller) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// SetLabel sets the subject recorded with completed sessions. A blank
// label restores DefaultLabel.
func (c *Controller) SetLabel(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}
	c.mu.Lock()
	c.label = label
	c.mu.Unlock()
}

// Completed is the number of recorded study sessions, which is also the
// position in the long-break cadence.
func (c *Controller) Completed() int {
	return len(c.store.State().Sessions)
}

func (c *Controller) Start() {
	c.mu.Lock()
	c.cycle.Running = true
	c.mu.Unlock()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	c.cycle.Running = false
	c.mu.Unlock()
}

// Toggle starts a stopped cycle and pauses a running one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	c.cycle.Running = !c.cycle.Running
	c.mu.Unlock()
}

// Reset goes back to a stopped work interval.
func (c *Controller) Reset() {
	settings := c.store.State().Pomodoro
	c.mu.Lock()
	c.cycle = NewCycle(settings)
	c.mu.Unlock()
}

// UpdateSettings validates p and dispatches it. The resulting reset happens
// through the store subscription, so settings dispatched elsewhere have
// the same effect.
func (c *Controller) UpdateSettings(p store.SettingsPatch) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return c.store.Dispatch(store.UpdatePomodoroSettings{Patch: p}).Err()
}

// Tick advances the cycle by one second.
func (c *Controller) Tick() Transition {
	st := c.store.State()
	completed := len(st.Sessions)

	c.mu.Lock()
	next, tr := Advance(c.cycle, st.Pomodoro, completed)
	c.cycle = next
	label := c.label
	c.mu.Unlock()

	switch tr.Kind {
	case WorkCompleted:
		session := store.StudySession{
			ID:       c.newID(),
			Duration: st.Pomodoro.WorkDuration,
			Subject:  label,
			Date:     c.now(),
		}
		c.store.Dispatch(store.AddSession{Session: session})
		c.log.Info("work interval completed",
			"subject", label,
			"minutes", session.Duration,
			"completed", completed+1,
			"long_break", tr.LongBreak)
	case BreakCompleted:
		c.log.Info("break completed")
	}
	return tr
}

// Run feeds ticks into Tick until ctx is done or ticks is closed.
// onTransition, if set, is called for every boundary crossed.
func (c *Controller) Run(ctx context.Context, ticks <-chan time.Time, onTransition func(Transition)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			tr := c.Tick()
			if tr.Kind != NoTransition && onTransition != nil {
				onTransition(tr)
			}
		}
	}
}
