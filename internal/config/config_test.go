package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/studysync/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 25, cfg.Pomodoro.Work)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
theme: Dark
demo: true
pomodoro:
  work: 50
  break: 10
profile:
  name: Ada
  study_goal: 90
  favorite_subjects: [Math, Physics, Math]
notify:
  enabled: false
log:
  level: debug
  file: /tmp/studysync.log
export:
  dir: /tmp/exports
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.Demo)
	assert.Equal(t, store.PomodoroSettings{WorkDuration: 50, BreakDuration: 10, LongBreakDuration: 15}, cfg.Settings())
	assert.Equal(t, "Ada", cfg.Profile.Name)
	assert.Equal(t, "student@example.com", cfg.Profile.Email)
	assert.Equal(t, 90, cfg.Profile.StudyGoal)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/studysync.log", cfg.Log.File)

	dir, err := cfg.ExportDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exports", dir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STUDYSYNC_POMODORO_WORK", "45")
	t.Setenv("STUDYSYNC_THEME", "dark")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Pomodoro.Work)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"theme", "theme: sepia\n"},
		{"zero duration", "pomodoro:\n  break: 0\n"},
		{"negative goal", "profile:\n  study_goal: -10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, store.ErrValidation)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "pomodoro: [unclosed\n"))
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	cfg := Default()
	cfg.Theme = "dark"
	cfg.Pomodoro.Work = 30
	cfg.Profile.FavoriteSubjects = []string{"Art", "Art", "Music"}

	now := time.Now()
	st := cfg.InitialState(now)
	assert.Equal(t, store.ThemeDark, st.Theme)
	assert.Equal(t, 30, st.Pomodoro.WorkDuration)
	assert.Equal(t, []string{"Art", "Music"}, st.Profile.FavoriteSubjects)
	assert.Empty(t, st.Notes)
	assert.Equal(t, store.AllSubjects, st.CurrentSubject)

	cfg.Demo = true
	st = cfg.InitialState(now)
	assert.Len(t, st.Notes, 2)
	assert.Len(t, st.Tasks, 2)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, "config.yaml", filepath.Base(path))
}
