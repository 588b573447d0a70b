package store

import "strings"

// FilterNotes returns the notes whose title or content contains search
// (case-insensitive) and whose subject equals subject. AllSubjects and ""
// disable the subject filter.
func FilterNotes(notes []Note, subject, search string) []Note {
	search = strings.ToLower(search)
	var out []Note
	for _, n := range notes {
		if subject != AllSubjects && subject != "" && n.Subject != subject {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// VisibleNotes applies the current subject filter and search.
func (s State) VisibleNotes(search string) []Note {
	return FilterNotes(s.Notes, s.CurrentSubject, search)
}

// NoteSubjects lists the distinct note subjects in first-seen order.
func NoteSubjects(notes []Note) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range notes {
		if seen[n.Subject] {
			continue
		}
		seen[n.Subject] = true
		out = append(out, n.Subject)
	}
	return out
}

func (s State) FindNote(id string) (Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

func (s State) FindTask(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// PartitionTasks splits tasks into pending and completed, keeping order.
func PartitionTasks(tasks []Task) (pending, completed []Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
