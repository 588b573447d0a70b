package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studysync/internal/store"
)

var priorities = []store.Priority{store.PriorityLow, store.PriorityMedium, store.PriorityHigh}

type tasksModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	cursor int // index into pending followed by completed

	formActive bool
	form       *huh.Form
	editingID  string

	// Form field pointers (survive value copies)
	formTitle    *string
	formPriority *store.Priority
	formSubject  *string
	formDue      *string
}

func newTasksModel(s *store.Store, now func() time.Time) tasksModel {
	title, subject, due := "", "", ""
	priority := store.PriorityMedium
	return tasksModel{
		store:        s,
		now:          now,
		formTitle:    &title,
		formPriority: &priority,
		formSubject:  &subject,
		formDue:      &due,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

// items lists tasks in display order: pending first, then completed.
func (t tasksModel) items() []store.Task {
	pending, completed := store.PartitionTasks(t.store.State().Tasks)
	return append(pending, completed...)
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	items := t.items()
	switch {
	case key.Matches(km, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(km, keys.Down):
		if t.cursor < len(items)-1 {
			t.cursor++
		}
	case key.Matches(km, keys.New):
		return t.showForm(store.Task{Priority: store.PriorityMedium})
	case key.Matches(km, keys.Edit):
		if t.cursor < len(items) {
			return t.showForm(items[t.cursor])
		}
	case key.Matches(km, keys.Toggle):
		if t.cursor < len(items) {
			task := items[t.cursor].ToggleCompleted()
			if err := t.store.Dispatch(store.UpdateTask{Task: task}).Err(); err != nil {
				return t, errorCmd("Task not updated: %v", err)
			}
			if task.Completed {
				return t, statusCmd(fmt.Sprintf("Completed %q", task.Title))
			}
			return t, statusCmd(fmt.Sprintf("Reopened %q", task.Title))
		}
	case key.Matches(km, keys.Delete):
		if t.cursor < len(items) {
			task := items[t.cursor]
			if t.store.Dispatch(store.DeleteTask{ID: task.ID}) != store.Applied {
				return t, errorCmd("Task %q no longer exists", task.Title)
			}
			if t.cursor >= len(items)-1 {
				t.cursor = max(0, len(items)-2)
			}
			return t, statusCmd(fmt.Sprintf("Deleted task %q", task.Title))
		}
	}
	return t, nil
}

func (t tasksModel) showForm(task store.Task) (tasksModel, tea.Cmd) {
	t.editingID = task.ID
	*t.formTitle = task.Title
	*t.formPriority = task.Priority
	*t.formSubject = task.Subject
	*t.formDue = formatDueDate(task.DueDate)

	priorityOptions := make([]huh.Option[store.Priority], len(priorities))
	for i, p := range priorities {
		priorityOptions[i] = huh.NewOption(p.String(), p)
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(t.formTitle).Validate(required("title")),
			huh.NewSelect[store.Priority]().Title("Priority").Options(priorityOptions...).Value(t.formPriority),
			huh.NewInput().Title("Subject").
				Suggestions(t.store.State().Profile.FavoriteSubjects).
				Value(t.formSubject),
			huh.NewInput().Title("Due date").
				Placeholder(dueDateLayout).
				Value(t.formDue).
				Validate(func(s string) error {
					_, err := parseDueDate(s)
					return err
				}),
		),
	).WithTheme(formTheme()).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		t.form = nil
		return t, t.save()
	}
	return t, cmd
}

func (t tasksModel) save() tea.Cmd {
	due, err := parseDueDate(*t.formDue)
	if err != nil {
		return errorCmd("Task not saved: %v", err)
	}
	in := store.TaskInput{
		Title:    *t.formTitle,
		Priority: *t.formPriority,
		Subject:  *t.formSubject,
		DueDate:  due,
	}

	if t.editingID == "" {
		task, err := store.NewTask(in)
		if err != nil {
			return errorCmd("Task not saved: %v", err)
		}
		t.store.Dispatch(store.AddTask{Task: task})
		return statusCmd(fmt.Sprintf("Added task %q", task.Title))
	}

	existing, ok := t.store.State().FindTask(t.editingID)
	if !ok {
		return errorCmd("Task no longer exists")
	}
	task, err := existing.Edit(in)
	if err != nil {
		return errorCmd("Task not saved: %v", err)
	}
	if err := t.store.Dispatch(store.UpdateTask{Task: task}).Err(); err != nil {
		return errorCmd("Task not saved: %v", err)
	}
	return statusCmd(fmt.Sprintf("Updated task %q", task.Title))
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View()),
		)
	}

	pending, completed := store.PartitionTasks(t.store.State().Tasks)

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))
	rows = append(rows, "")

	if len(pending)+len(completed) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add one."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	now := t.now()
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Pending (%d)", len(pending))))
	for i, task := range pending {
		rows = append(rows, t.renderTask(task, i == t.cursor, now))
	}
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Completed (%d)", len(completed))))
	for i, task := range completed {
		rows = append(rows, t.renderTask(task, len(pending)+i == t.cursor, now))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: done/undo  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t tasksModel) renderTask(task store.Task, selected bool, now time.Time) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "[ ]"
	if task.Completed {
		check = "[x]"
		style = style.Strikethrough(true).Foreground(colorMuted)
	}

	line := style.Render(fmt.Sprintf("%s%s %-36s", cursor, check, truncate(task.Title, 36)))
	line += " " + priorityStyle(task.Priority).Render(fmt.Sprintf("%-6s", task.Priority))
	if task.Subject != "" {
		line += " " + subtitleStyle.Render(truncate(task.Subject, 18))
	}
	if task.DueDate != nil {
		due := "due " + task.DueDate.Local().Format("Jan 02")
		if !task.Completed && task.DueDate.Before(now) {
			line += " " + errorStyle.Render(due+" (overdue)")
		} else {
			line += " " + mutedStyle.Render(due)
		}
	}
	return line
}
