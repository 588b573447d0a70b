package store

import "time"

// AllSubjects is the subject filter value that matches every note.
const AllSubjects = "All Subjects"

// DefaultNoteSubject is used when a note is created without a subject.
const DefaultNoteSubject = "General"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) String() string { return string(t) }

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Note struct {
	ID        string
	Title     string
	Content   string
	Subject   string
	CreatedAt time.Time
	Summary   string // empty when none
}

type Task struct {
	ID        string
	Title     string
	Completed bool
	Priority  Priority
	Subject   string // empty when none
	DueDate   *time.Time
}

// StudySession records one completed Pomodoro work interval.
type StudySession struct {
	ID       string
	Duration int // minutes
	Subject  string
	Date     time.Time
}

type UserProfile struct {
	Name             string
	Email            string
	StudyGoal        int // minutes per day
	FavoriteSubjects []string
	Avatar           string // encoded image, stored as given
}

// PomodoroSettings holds interval lengths in minutes.
type PomodoroSettings struct {
	WorkDuration      int
	BreakDuration     int
	LongBreakDuration int
}

// SettingsPatch carries the fields of an UPDATE_POMODORO_SETTINGS action.
// Nil fields are left untouched.
type SettingsPatch struct {
	WorkDuration      *int
	BreakDuration     *int
	LongBreakDuration *int
}

// State is the whole application state. Values are never mutated in place
// by Reduce, so a State obtained from a Store is safe to read.
type State struct {
	Notes          []Note
	Tasks          []Task
	Sessions       []StudySession
	Profile        UserProfile
	CurrentSubject string
	Pomodoro       PomodoroSettings
	Theme          Theme
}

// DefaultSettings returns the 25/5/15 Pomodoro defaults.
func DefaultSettings() PomodoroSettings {
	return PomodoroSettings{
		WorkDuration:      25,
		BreakDuration:     5,
		LongBreakDuration: 15,
	}
}

// DefaultState returns an empty state with the stock profile and settings.
func DefaultState() State {
	return State{
		Profile: UserProfile{
			Name:             "Student User",
			Email:            "student@example.com",
			StudyGoal:        120,
			FavoriteSubjects: []string{"Computer Science", "Biology", "Mathematics"},
		},
		CurrentSubject: AllSubjects,
		Pomodoro:       DefaultSettings(),
		Theme:          ThemeLight,
	}
}

// DemoState seeds DefaultState with a couple of sample notes and tasks.
func DemoState(now time.Time) State {
	s := DefaultState()
	s.Notes = []Note{
		{
			ID:        "1",
			Title:     "Introduction to React",
			Content:   "React is a JavaScript library for building user interfaces. It uses a component-based architecture and virtual DOM for efficient rendering.",
			Subject:   "Computer Science",
			CreatedAt: now,
		},
		{
			ID:        "2",
			Title:     "Photosynthesis Process",
			Content:   "Photosynthesis is the process by which plants convert light energy into chemical energy. It occurs in chloroplasts and involves two main stages: light reactions and dark reactions.",
			Subject:   "Biology",
			CreatedAt: now,
		},
	}
	tomorrow := now.Add(24 * time.Hour)
	dayAfter := now.Add(48 * time.Hour)
	s.Tasks = []Task{
		{
			ID:       "1",
			Title:    "Complete React assignment",
			Priority: PriorityHigh,
			Subject:  "Computer Science",
			DueDate:  &tomorrow,
		},
		{
			ID:       "2",
			Title:    "Study for Biology exam",
			Priority: PriorityMedium,
			Subject:  "Biology",
			DueDate:  &dayAfter,
		},
	}
	return s
}
