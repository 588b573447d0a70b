package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studysync/internal/pomodoro"
)

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tick advances the controller by one second and reports any boundary.
func (p pomodoroModel) tick() (pomodoroModel, tea.Cmd) {
	tr := p.ctrl.Tick()
	if tr.Kind == pomodoro.NoTransition {
		return p, nil
	}
	msg := transitionMsg{
		tr:        tr,
		settings:  p.store.State().Pomodoro,
		completed: p.ctrl.Completed(),
	}
	return p, func() tea.Msg { return msg }
}

func transitionStatus(m transitionMsg) string {
	switch m.tr.Kind {
	case pomodoro.WorkCompleted:
		if m.tr.LongBreak {
			return "Session complete! Long break time \a"
		}
		return "Session complete! Break time \a"
	case pomodoro.BreakCompleted:
		return "Break over, ready to focus \a"
	}
	return ""
}
