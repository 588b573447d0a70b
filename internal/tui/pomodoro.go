package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

type pomodoroModel struct {
	store  *store.Store
	ctrl   *pomodoro.Controller
	width  int
	height int

	bar progress.Model

	formActive bool
	form       *huh.Form
	formType   string // "settings", "label"

	// Form field pointers (survive value copies)
	formWork      *string
	formBreak     *string
	formLongBreak *string
	formLabel     *string
}

func newPomodoroModel(s *store.Store, c *pomodoro.Controller) pomodoroModel {
	work, brk, long, label := "", "", "", ""
	return pomodoroModel{
		store:         s,
		ctrl:          c,
		bar:           progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		formWork:      &work,
		formBreak:     &brk,
		formLongBreak: &long,
		formLabel:     &label,
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.bar.Width = max(10, w-16)
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	// The clock keeps running while a form is open.
	if _, ok := msg.(tickMsg); ok {
		return p.tick()
	}
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(km, keys.Toggle):
		p.ctrl.Toggle()
	case key.Matches(km, keys.Reset):
		p.ctrl.Reset()
		return p, statusCmd("Timer reset")
	case key.Matches(km, keys.Settings):
		return p.showSettingsForm()
	case key.Matches(km, keys.Label):
		return p.showLabelForm()
	}
	return p, nil
}

func (p pomodoroModel) showLabelForm() (pomodoroModel, tea.Cmd) {
	*p.formLabel = p.ctrl.Label()
	p.formType = "label"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What are you studying?").
				Placeholder(pomodoro.DefaultLabel).
				Suggestions(p.store.State().Profile.FavoriteSubjects).
				Value(p.formLabel),
		),
	).WithTheme(formTheme()).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p pomodoroModel) updateForm(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		switch p.formType {
		case "settings":
			return p, p.saveSettings()
		case "label":
			p.ctrl.SetLabel(*p.formLabel)
			return p, statusCmd("Studying " + p.ctrl.Label())
		}
	}
	return p, cmd
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Pomodoro Settings")
		if p.formType == "label" {
			title = titleStyle.Render("Session Label")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View(), "", p.renderMini()),
		)
	}

	st := p.store.State()
	cycle := p.ctrl.Cycle()

	title := titleStyle.Render("Pomodoro Timer")

	clockStyle := timerStyle
	var phaseLabel string
	switch {
	case cycle.Running && cycle.Mode == pomodoro.ModeWork:
		clockStyle = accentStyle.Bold(true).Align(lipgloss.Center)
		phaseLabel = accentStyle.Bold(true).Render(cycle.Label())
	case cycle.Running:
		clockStyle = timerRunningStyle
		phaseLabel = successStyle.Bold(true).Render(cycle.Label())
	case cycle.Remaining < cycle.Total:
		clockStyle = timerPausedStyle
		phaseLabel = warningStyle.Bold(true).Render(cycle.Label() + " (paused)")
	default:
		phaseLabel = mutedStyle.Render(cycle.Label() + " - ready")
	}
	clock := clockStyle.Width(max(10, w-6)).Render(pomodoro.FormatClock(cycle.Remaining))

	completed := len(st.Sessions)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		mutedStyle.Render("Label: "), highlightStyle.Render(p.ctrl.Label()),
		mutedStyle.Render(fmt.Sprintf("   Sessions: %d", completed)),
		mutedStyle.Render("   Focus time: "+formatStudyMinutes(store.TotalStudyMinutes(st.Sessions))),
	)
	durations := mutedStyle.Render(fmt.Sprintf("Work %d min · Break %d min · Long break %d min",
		st.Pomodoro.WorkDuration, st.Pomodoro.BreakDuration, st.Pomodoro.LongBreakDuration))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		clock,
		phaseLabel,
		"",
		p.bar.ViewAs(cycle.Progress()),
		"",
		renderCadence(completed, cycle),
		"",
		stats,
		durations,
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  c: settings  l: label")
	if cycle.Running {
		controls = mutedStyle.Render("space: pause  r: reset  c: settings  l: label")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

// renderMini is the one-line clock shown under forms.
func (p pomodoroModel) renderMini() string {
	c := p.ctrl.Cycle()
	return mutedStyle.Render(fmt.Sprintf("%s %s", c.Label(), pomodoro.FormatClock(c.Remaining)))
}

// renderCadence draws the position in the current set of four sessions.
func renderCadence(completed int, c pomodoro.Cycle) string {
	done := completed % pomodoro.LongBreakEvery
	if c.Mode == pomodoro.ModeBreak && c.LongBreak {
		done = pomodoro.LongBreakEvery
	}
	var parts []string
	for i := 0; i < pomodoro.LongBreakEvery; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && c.Mode == pomodoro.ModeWork && c.Running:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ") + mutedStyle.Render("  until long break")
}
