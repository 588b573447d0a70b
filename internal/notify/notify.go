package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

const AppName = "StudySync"

type Notifier interface {
	Notify(title, message string) error
}

// Desktop raises native desktop notifications.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Noop drops every notification.
type Noop struct{}

func (Noop) Notify(string, string) error { return nil }

// New returns a Desktop notifier when enabled, Noop otherwise.
func New(enabled bool) Notifier {
	if enabled {
		return Desktop{}
	}
	return Noop{}
}

// FormatTransition builds the notification for a boundary crossed by the
// cycle. completed is the session count after the transition.
func FormatTransition(tr pomodoro.Transition, s store.PomodoroSettings, completed int) (string, string) {
	switch tr.Kind {
	case pomodoro.WorkCompleted:
		if tr.LongBreak {
			return AppName + ": long break",
				fmt.Sprintf("Session %d done. Take %d minutes, you earned it.", completed, s.LongBreakDuration)
		}
		return AppName + ": break time",
			fmt.Sprintf("Session %d done. Take a %d minute break.", completed, s.BreakDuration)
	case pomodoro.BreakCompleted:
		return AppName + ": back to work",
			fmt.Sprintf("Break over. Next focus block is %d minutes.", s.WorkDuration)
	}
	return "", ""
}

// Transition formats tr and sends it through n. NoTransition sends nothing.
func Transition(n Notifier, tr pomodoro.Transition, s store.PomodoroSettings, completed int) error {
	if tr.Kind == pomodoro.NoTransition {
		return nil
	}
	title, msg := FormatTransition(tr, s, completed)
	return n.Notify(title, msg)
}
