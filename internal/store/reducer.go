package store

// Reduce returns the state that results from applying a to s. It never
// modifies s: any collection that changes is copied first.
func Reduce(s State, a Action) (State, Outcome) {
	switch a := a.(type) {
	case AddNote:
		s.Notes = appendCopy(s.Notes, a.Note)
		return s, Applied
	case UpdateNote:
		notes, ok := replaceByID(s.Notes, a.Note, func(n Note) string { return n.ID })
		if !ok {
			return s, NotFound
		}
		s.Notes = notes
		return s, Applied
	case DeleteNote:
		notes, ok := deleteByID(s.Notes, a.ID, func(n Note) string { return n.ID })
		if !ok {
			return s, NotFound
		}
		s.Notes = notes
		return s, Applied

	case AddTask:
		s.Tasks = appendCopy(s.Tasks, a.Task)
		return s, Applied
	case UpdateTask:
		tasks, ok := replaceByID(s.Tasks, a.Task, func(t Task) string { return t.ID })
		if !ok {
			return s, NotFound
		}
		s.Tasks = tasks
		return s, Applied
	case DeleteTask:
		tasks, ok := deleteByID(s.Tasks, a.ID, func(t Task) string { return t.ID })
		if !ok {
			return s, NotFound
		}
		s.Tasks = tasks
		return s, Applied

	case AddSession:
		s.Sessions = appendCopy(s.Sessions, a.Session)
		return s, Applied

	case UpdateProfile:
		p := a.Profile
		p.FavoriteSubjects = uniqueStrings(p.FavoriteSubjects)
		s.Profile = p
		return s, Applied

	case SetCurrentSubject:
		s.CurrentSubject = a.Subject
		return s, Applied

	case UpdatePomodoroSettings:
		s.Pomodoro = s.Pomodoro.Merge(a.Patch)
		return s, Applied

	case ToggleTheme:
		s.Theme = s.Theme.Toggled()
		return s, Applied
	}
	return s, Unhandled
}

// Merge applies the set, positive fields of p on top of s.
func (s PomodoroSettings) Merge(p SettingsPatch) PomodoroSettings {
	if p.WorkDuration != nil && *p.WorkDuration > 0 {
		s.WorkDuration = *p.WorkDuration
	}
	if p.BreakDuration != nil && *p.BreakDuration > 0 {
		s.BreakDuration = *p.BreakDuration
	}
	if p.LongBreakDuration != nil && *p.LongBreakDuration > 0 {
		s.LongBreakDuration = *p.LongBreakDuration
	}
	return s
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceByID[T any](items []T, item T, id func(T) string) ([]T, bool) {
	target := id(item)
	var out []T
	for i, existing := range items {
		if id(existing) != target {
			continue
		}
		if out == nil {
			out = make([]T, len(items))
			copy(out, items)
		}
		out[i] = item
	}
	return out, out != nil
}

func deleteByID[T any](items []T, target string, id func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, existing := range items {
		if id(existing) != target {
			out = append(out, existing)
		}
	}
	if len(out) == len(items) {
		return items, false
	}
	return out, true
}

func uniqueStrings(in []string) []string {
	if in == nil {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
