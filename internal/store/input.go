package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteInput holds the user-entered fields of a note.
type NoteInput struct {
	Title   string
	Content string
	Subject string
}

// Validate checks all fields and collects all errors.
func (i NoteInput) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, FieldError{Field: "content", Message: "required"})
	}
	return validationResult(errs)
}

// NewNote validates in and builds a note with a fresh ID, ready for AddNote.
func NewNote(in NoteInput, now time.Time) (Note, error) {
	if err := in.Validate(); err != nil {
		return Note{}, err
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = DefaultNoteSubject
	}
	return Note{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Subject:   subject,
		CreatedAt: now,
	}, nil
}

// Edit returns a copy of n with the input fields applied. ID, CreatedAt
// and Summary are kept.
func (n Note) Edit(in NoteInput) (Note, error) {
	if err := in.Validate(); err != nil {
		return n, err
	}
	n.Title = strings.TrimSpace(in.Title)
	n.Content = strings.TrimSpace(in.Content)
	if subject := strings.TrimSpace(in.Subject); subject != "" {
		n.Subject = subject
	}
	return n, nil
}

// TaskInput holds the user-entered fields of a task.
type TaskInput struct {
	Title    string
	Priority Priority
	Subject  string
	DueDate  *time.Time
}

// Validate checks all fields and collects all errors.
func (i TaskInput) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if !i.Priority.IsValid() {
		errs = append(errs, FieldError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", i.Priority)})
	}
	return validationResult(errs)
}

// NewTask validates in and builds a pending task with a fresh ID.
func NewTask(in TaskInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	return Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(in.Title),
		Priority: in.Priority,
		Subject:  strings.TrimSpace(in.Subject),
		DueDate:  in.DueDate,
	}, nil
}

// Edit returns a copy of t with the input fields applied. ID and Completed
// are kept.
func (t Task) Edit(in TaskInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return t, err
	}
	t.Title = strings.TrimSpace(in.Title)
	t.Priority = in.Priority
	t.Subject = strings.TrimSpace(in.Subject)
	t.DueDate = in.DueDate
	return t, nil
}

// ToggleCompleted returns a copy of t with Completed flipped.
func (t Task) ToggleCompleted() Task {
	t.Completed = !t.Completed
	return t
}

// ParsePriority accepts low, medium or high in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", NewValidationError("priority", fmt.Sprintf("unknown priority %q", s))
	}
	return p, nil
}

// Validate checks all fields and collects all errors.
func (p UserProfile) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if p.StudyGoal < 0 {
		errs = append(errs, FieldError{Field: "study_goal", Message: "must not be negative"})
	}
	seen := make(map[string]bool, len(p.FavoriteSubjects))
	for _, s := range p.FavoriteSubjects {
		if seen[s] {
			errs = append(errs, FieldError{Field: "favorite_subjects", Message: fmt.Sprintf("duplicate subject %q", s)})
		}
		seen[s] = true
	}
	return validationResult(errs)
}

// WithFavorite returns a copy of p with subject appended to the favorites.
// Blank or already present subjects are ignored.
func (p UserProfile) WithFavorite(subject string) UserProfile {
	subject = strings.TrimSpace(subject)
	if subject == "" || slices.Contains(p.FavoriteSubjects, subject) {
		return p
	}
	p.FavoriteSubjects = append(slices.Clone(p.FavoriteSubjects), subject)
	return p
}

// WithoutFavorite returns a copy of p without subject.
func (p UserProfile) WithoutFavorite(subject string) UserProfile {
	out := make([]string, 0, len(p.FavoriteSubjects))
	for _, s := range p.FavoriteSubjects {
		if s != subject {
			out = append(out, s)
		}
	}
	p.FavoriteSubjects = out
	return p
}

// Validate checks that every set duration is positive.
func (p SettingsPatch) Validate() error {
	var errs []FieldError
	check := func(field string, v *int) {
		if v != nil && *v <= 0 {
			errs = append(errs, FieldError{Field: field, Message: "must be a positive number of minutes"})
		}
	}
	check("work_duration", p.WorkDuration)
	check("break_duration", p.BreakDuration)
	check("long_break_duration", p.LongBreakDuration)
	return validationResult(errs)
}

// Validate checks that every duration is positive.
func (s PomodoroSettings) Validate() error {
	return SettingsPatch{
		WorkDuration:      &s.WorkDuration,
		BreakDuration:     &s.BreakDuration,
		LongBreakDuration: &s.LongBreakDuration,
	}.Validate()
}
