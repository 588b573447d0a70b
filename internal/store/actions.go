package store

type ActionType string

const (
	ActionAddNote                ActionType = "ADD_NOTE"
	ActionUpdateNote             ActionType = "UPDATE_NOTE"
	ActionDeleteNote             ActionType = "DELETE_NOTE"
	ActionAddTask                ActionType = "ADD_TASK"
	ActionUpdateTask             ActionType = "UPDATE_TASK"
	ActionDeleteTask             ActionType = "DELETE_TASK"
	ActionAddSession             ActionType = "ADD_SESSION"
	ActionUpdateProfile          ActionType = "UPDATE_PROFILE"
	ActionSetCurrentSubject      ActionType = "SET_CURRENT_SUBJECT"
	ActionUpdatePomodoroSettings ActionType = "UPDATE_POMODORO_SETTINGS"
	ActionToggleTheme            ActionType = "TOGGLE_THEME"
)

// Action is a request to change State. Reduce handles the action types
// declared in this package and ignores everything else.
type Action interface {
	Type() ActionType
}

type AddNote struct{ Note Note }

type UpdateNote struct{ Note Note }

type DeleteNote struct{ ID string }

type AddTask struct{ Task Task }

type UpdateTask struct{ Task Task }

type DeleteTask struct{ ID string }

type AddSession struct{ Session StudySession }

type UpdateProfile struct{ Profile UserProfile }

type SetCurrentSubject struct{ Subject string }

type UpdatePomodoroSettings struct{ Patch SettingsPatch }

type ToggleTheme struct{}

func (AddNote) Type() ActionType                { return ActionAddNote }
func (UpdateNote) Type() ActionType             { return ActionUpdateNote }
func (DeleteNote) Type() ActionType             { return ActionDeleteNote }
func (AddTask) Type() ActionType                { return ActionAddTask }
func (UpdateTask) Type() ActionType             { return ActionUpdateTask }
func (DeleteTask) Type() ActionType             { return ActionDeleteTask }
func (AddSession) Type() ActionType             { return ActionAddSession }
func (UpdateProfile) Type() ActionType          { return ActionUpdateProfile }
func (SetCurrentSubject) Type() ActionType      { return ActionSetCurrentSubject }
func (UpdatePomodoroSettings) Type() ActionType { return ActionUpdatePomodoroSettings }
func (ToggleTheme) Type() ActionType            { return ActionToggleTheme }

// Outcome reports what Reduce did with an action.
type Outcome int

const (
	Applied Outcome = iota
	NotFound
	Unhandled
)

var outcomeNames = map[Outcome]string{
	Applied:   "applied",
	NotFound:  "not_found",
	Unhandled: "unhandled",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Err maps the outcome to nil, ErrNotFound or ErrUnhandled.
func (o Outcome) Err() error {
	switch o {
	case Applied:
		return nil
	case NotFound:
		return ErrNotFound
	default:
		return ErrUnhandled
	}
}

// IntPtr is a convenience for building a SettingsPatch.
func IntPtr(v int) *int { return &v }
