package store

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Listener is called after every dispatch with the action, its outcome and
// the resulting state.
type Listener func(a Action, o Outcome, s State)

// Store is the single source of truth for a running app. Every mutation
// goes through Dispatch, which applies Reduce under a lock, so the order
// of dispatches fully determines the state.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	log       *log.Logger
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store holding initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		listeners: make(map[int]Listener),
		log:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and notifies listeners. Listeners run after the lock
// is released and may dispatch further actions.
func (s *Store) Dispatch(a Action) Outcome {
	s.mu.Lock()
	next, outcome := Reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if l, ok := s.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	s.log.Debug("dispatch", "action", actionName(a), "outcome", outcome)
	for _, l := range listeners {
		l(a, outcome, next)
	}
	return outcome
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return string(a.Type())
}
