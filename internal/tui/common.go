package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewNotes viewState = iota
	viewTasks
	viewPomodoro
	viewProfile
)

var viewNames = []string{"Notes", "Tasks", "Pomodoro", "Profile"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// transitionMsg reports a Pomodoro boundary crossed on a tick.
type transitionMsg struct {
	tr        pomodoro.Transition
	settings  store.PomodoroSettings
	completed int
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// formatStudyMinutes renders minutes as "45m" or "2h 05m".
func formatStudyMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// splitList parses a comma-separated list, dropping blanks and repeats.
func splitList(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

const dueDateLayout = "2006-01-02"

// parseDueDate accepts YYYY-MM-DD in local time. A blank string means no
// due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("due date must look like %s", dueDateLayout)
	}
	return &t, nil
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dueDateLayout)
}
