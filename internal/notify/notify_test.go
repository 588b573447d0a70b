package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

type recorder struct {
	titles   []string
	messages []string
	err      error
}

func (r *recorder) Notify(title, message string) error {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
	return r.err
}

func TestNew(t *testing.T) {
	assert.IsType(t, Desktop{}, New(true))
	assert.IsType(t, Noop{}, New(false))
	assert.NoError(t, Noop{}.Notify("a", "b"))
}

func TestFormatTransition(t *testing.T) {
	s := store.DefaultSettings()
	tests := []struct {
		name  string
		tr    pomodoro.Transition
		title string
		msg   string
	}{
		{
			"short break",
			pomodoro.Transition{Kind: pomodoro.WorkCompleted},
			"StudySync: break time",
			"Session 1 done. Take a 5 minute break.",
		},
		{
			"long break",
			pomodoro.Transition{Kind: pomodoro.WorkCompleted, LongBreak: true},
			"StudySync: long break",
			"Session 1 done. Take 15 minutes, you earned it.",
		},
		{
			"back to work",
			pomodoro.Transition{Kind: pomodoro.BreakCompleted},
			"StudySync: back to work",
			"Break over. Next focus block is 25 minutes.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, msg := FormatTransition(tt.tr, s, 1)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestTransitionSkipsNoTransition(t *testing.T) {
	r := &recorder{}
	assert.NoError(t, Transition(r, pomodoro.Transition{}, store.DefaultSettings(), 0))
	assert.Empty(t, r.titles)
}

func TestTransitionPropagatesError(t *testing.T) {
	r := &recorder{err: errors.New("no dbus")}
	err := Transition(r, pomodoro.Transition{Kind: pomodoro.BreakCompleted}, store.DefaultSettings(), 2)
	assert.EqualError(t, err, "no dbus")
	assert.Equal(t, []string{"StudySync: back to work"}, r.titles)
}
