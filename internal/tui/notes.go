package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studysync/internal/store"
)

type notesModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	cursor    int
	search    textinput.Model
	searching bool

	formActive bool
	form       *huh.Form
	editingID  string // empty for a new note

	// Form field pointers (survive value copies)
	formTitle   *string
	formContent *string
	formSubject *string
}

func newNotesModel(s *store.Store, now func() time.Time) notesModel {
	ti := textinput.New()
	ti.Placeholder = "search title or content"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	title, content, subject := "", "", ""
	return notesModel{
		store:       s,
		now:         now,
		search:      ti,
		formTitle:   &title,
		formContent: &content,
		formSubject: &subject,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
	n.search.Width = max(10, w-12)
}

// capturing reports whether keys should go to the view rather than the
// global bindings.
func (n notesModel) capturing() bool {
	return n.formActive || n.searching
}

func (n notesModel) visible() []store.Note {
	return n.store.State().VisibleNotes(n.search.Value())
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}
	if n.searching {
		return n.updateSearch(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}

	notes := n.visible()
	switch {
	case key.Matches(km, keys.Up):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(km, keys.Down):
		if n.cursor < len(notes)-1 {
			n.cursor++
		}
	case key.Matches(km, keys.Search):
		n.searching = true
		return n, n.search.Focus()
	case key.Matches(km, keys.Back):
		if n.search.Value() != "" {
			n.search.SetValue("")
			n.cursor = 0
		}
	case key.Matches(km, keys.Subject):
		return n.cycleSubject()
	case key.Matches(km, keys.New):
		return n.showForm(store.Note{})
	case key.Matches(km, keys.Edit):
		if n.cursor < len(notes) {
			return n.showForm(notes[n.cursor])
		}
	case key.Matches(km, keys.Delete):
		if n.cursor < len(notes) {
			note := notes[n.cursor]
			if n.store.Dispatch(store.DeleteNote{ID: note.ID}) != store.Applied {
				return n, errorCmd("Note %q no longer exists", note.Title)
			}
			if n.cursor >= len(notes)-1 {
				n.cursor = max(0, len(notes)-2)
			}
			return n, statusCmd(fmt.Sprintf("Deleted note %q", note.Title))
		}
	}
	return n, nil
}

func (n notesModel) updateSearch(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			n.searching = false
			n.search.Blur()
			n.search.SetValue("")
			n.cursor = 0
			return n, nil
		case "enter":
			n.searching = false
			n.search.Blur()
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.search, cmd = n.search.Update(msg)
	n.cursor = 0
	return n, cmd
}

// cycleSubject moves the subject filter to the next of All Subjects and
// the subjects present in the notes.
func (n notesModel) cycleSubject() (notesModel, tea.Cmd) {
	st := n.store.State()
	subjects := append([]string{store.AllSubjects}, store.NoteSubjects(st.Notes)...)
	i := slices.Index(subjects, st.CurrentSubject)
	next := subjects[(i+1)%len(subjects)]
	n.store.Dispatch(store.SetCurrentSubject{Subject: next})
	n.cursor = 0
	return n, nil
}

func (n notesModel) showForm(note store.Note) (notesModel, tea.Cmd) {
	n.editingID = note.ID
	*n.formTitle = note.Title
	*n.formContent = note.Content
	*n.formSubject = note.Subject
	if note.ID == "" {
		if cur := n.store.State().CurrentSubject; cur != store.AllSubjects {
			*n.formSubject = cur
		}
	}

	st := n.store.State()
	suggestions := slices.Clone(st.Profile.FavoriteSubjects)
	for _, s := range store.NoteSubjects(st.Notes) {
		if !slices.Contains(suggestions, s) {
			suggestions = append(suggestions, s)
		}
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(n.formTitle).Validate(required("title")),
			huh.NewText().Title("Content").Lines(6).Value(n.formContent).Validate(required("content")),
			huh.NewInput().Title("Subject").
				Placeholder(store.DefaultNoteSubject).
				Suggestions(suggestions).
				Value(n.formSubject),
		),
	).WithTheme(formTheme()).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		n.form = nil
		return n, n.save()
	}
	return n, cmd
}

func (n notesModel) save() tea.Cmd {
	in := store.NoteInput{Title: *n.formTitle, Content: *n.formContent, Subject: *n.formSubject}

	if n.editingID == "" {
		note, err := store.NewNote(in, n.now())
		if err != nil {
			return errorCmd("Note not saved: %v", err)
		}
		n.store.Dispatch(store.AddNote{Note: note})
		return statusCmd(fmt.Sprintf("Added note %q", note.Title))
	}

	existing, ok := n.store.State().FindNote(n.editingID)
	if !ok {
		return errorCmd("Note no longer exists")
	}
	note, err := existing.Edit(in)
	if err != nil {
		return errorCmd("Note not saved: %v", err)
	}
	if err := n.store.Dispatch(store.UpdateNote{Note: note}).Err(); err != nil {
		return errorCmd("Note not saved: %v", err)
	}
	return statusCmd(fmt.Sprintf("Updated note %q", note.Title))
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := titleStyle.Render("New Note")
		if n.editingID != "" {
			title = titleStyle.Render("Edit Note")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View()),
		)
	}

	st := n.store.State()
	notes := n.visible()

	var rows []string
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Notes"), "  ",
		subtitleStyle.Render(st.CurrentSubject),
		mutedStyle.Render(fmt.Sprintf("  %d of %d", len(notes), len(st.Notes))),
	)
	rows = append(rows, header)

	if n.searching || n.search.Value() != "" {
		rows = append(rows, n.search.View())
	}
	rows = append(rows, "")

	if len(notes) == 0 {
		msg := "No notes yet. Press n to write one."
		if len(st.Notes) > 0 {
			msg = "No notes match. Press esc to clear the search or s to change subject."
		}
		rows = append(rows, mutedStyle.Render(msg))
	}

	for i, note := range notes {
		cursor := "  "
		style := normalItemStyle
		if i == n.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(fmt.Sprintf("%s%-32s", cursor, truncate(note.Title, 32))) +
			" " + subtitleStyle.Render(fmt.Sprintf("%-18s", truncate(note.Subject, 18))) +
			" " + mutedStyle.Render(note.CreatedAt.Local().Format("Jan 02 15:04"))
		rows = append(rows, line)
	}

	if n.cursor < len(notes) {
		rows = append(rows, "", n.renderPreview(notes[n.cursor], w-6))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  /: search  s: subject  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (n notesModel) renderPreview(note store.Note, w int) string {
	body := lipgloss.NewStyle().Width(max(20, w)).Foreground(colorFg).Render(note.Content)
	parts := []string{highlightStyle.Bold(true).Render(note.Title), body}
	if note.Summary != "" {
		parts = append(parts, "", mutedStyle.Render("Summary: ")+note.Summary)
	}
	return activePanelStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
