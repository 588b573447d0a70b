package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sadopc/studysync/internal/store"
)

func (p pomodoroModel) showSettingsForm() (pomodoroModel, tea.Cmd) {
	s := p.store.State().Pomodoro
	*p.formWork = strconv.Itoa(s.WorkDuration)
	*p.formBreak = strconv.Itoa(s.BreakDuration)
	*p.formLongBreak = strconv.Itoa(s.LongBreakDuration)
	p.formType = "settings"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work (min)").Value(p.formWork).Validate(validMinutes),
			huh.NewInput().Title("Break (min)").Value(p.formBreak).Validate(validMinutes),
			huh.NewInput().Title("Long break (min)").Value(p.formLongBreak).Validate(validMinutes),
			huh.NewNote().Description("Saving resets the current timer."),
		).Title("Pomodoro"),
	).WithTheme(formTheme()).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p pomodoroModel) saveSettings() tea.Cmd {
	patch, err := settingsPatch(*p.formWork, *p.formBreak, *p.formLongBreak)
	if err != nil {
		return errorCmd("Settings not saved: %v", err)
	}
	if err := p.ctrl.UpdateSettings(patch); err != nil {
		return errorCmd("Settings not saved: %v", err)
	}
	return statusCmd("Settings saved, timer reset")
}

// settingsPatch builds a patch from the form's minute fields. Blank fields
// are left out of the patch.
func settingsPatch(work, brk, long string) (store.SettingsPatch, error) {
	var p store.SettingsPatch
	var err error
	if p.WorkDuration, err = parseMinutes(work); err != nil {
		return p, fmt.Errorf("work: %w", err)
	}
	if p.BreakDuration, err = parseMinutes(brk); err != nil {
		return p, fmt.Errorf("break: %w", err)
	}
	if p.LongBreakDuration, err = parseMinutes(long); err != nil {
		return p, fmt.Errorf("long break: %w", err)
	}
	return p, nil
}

func parseMinutes(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number of minutes", s)
	}
	return &n, nil
}

func validMinutes(s string) error {
	n, err := parseMinutes(s)
	if err != nil {
		return err
	}
	if n != nil && *n <= 0 {
		return fmt.Errorf("must be at least 1 minute")
	}
	return nil
}
