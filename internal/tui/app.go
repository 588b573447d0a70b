package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/sadopc/studysync/internal/export"
	"github.com/sadopc/studysync/internal/notify"
	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	pomo     *pomodoro.Controller
	notifier notify.Notifier
	log      *log.Logger
	now      func() time.Time

	exportDir string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	notes    notesModel
	tasks    tasksModel
	pomodoro pomodoroModel
	profile  profileModel

	help   help.Model
	status string
}

type Option func(*App)

func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithExportDir sets where exports are written. Defaults to the working
// directory.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func NewApp(s *store.Store, c *pomodoro.Controller, opts ...Option) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		pomo:       c,
		notifier:   notify.Noop{},
		log:        log.New(io.Discard),
		now:        time.Now,
		exportDir:  ".",
		activeView: viewNotes,
		help:       h,
	}
	for _, opt := range opts {
		opt(&a)
	}

	a.notes = newNotesModel(s, a.now)
	a.tasks = newTasksModel(s, a.now)
	a.pomodoro = newPomodoroModel(s, c)
	a.profile = newProfileModel(s, a.now)

	applyTheme(s.State().Theme)
	return a
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.notes.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Theme):
			a.store.Dispatch(store.ToggleTheme{})
			theme := a.store.State().Theme
			applyTheme(theme)
			a.status = "Theme: " + theme.String()
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewNotes
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewPomodoro
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewProfile
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Always route ticks to the pomodoro, whichever view is active
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case transitionMsg:
		a.status = transitionStatus(msg)
		return a, a.notifyCmd(msg)

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.log.Warn("status", "msg", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		a.log.Info("exported", "path", msg.path)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) notifyCmd(m transitionMsg) tea.Cmd {
	n, l := a.notifier, a.log
	return func() tea.Msg {
		if err := notify.Transition(n, m.tr, m.settings, m.completed); err != nil {
			l.Warn("notification failed", "err", err)
		}
		return nil
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewNotes:
		return a.notes.capturing()
	case viewTasks:
		return a.tasks.formActive
	case viewPomodoro:
		return a.pomodoro.formActive
	case viewProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewNotes:
		content = a.notes.view()
	case viewTasks:
		content = a.tasks.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewProfile:
		content = a.profile.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studysync")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Pomodoro indicator in footer
	timerInfo := ""
	if c := a.pomo.Cycle(); c.Running {
		clock := pomodoro.FormatClock(c.Remaining)
		timerInfo = successStyle.Render(" ● " + clock + " " + c.Label())
	} else if c.Remaining < c.Total {
		timerInfo = warningStyle.Render(" ⏸ " + pomodoro.FormatClock(c.Remaining))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (study sessions)", "JSON (everything)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	st := a.store.State()
	dir := a.exportDir
	now := a.now()
	return func() tea.Msg {
		if format == 0 {
			path := filepath.Join(dir, export.Filename("csv", now))
			if err := export.ToCSV(st.Sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		path := filepath.Join(dir, export.Filename("json", now))
		if err := export.ToJSON(st, path); err != nil {
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
