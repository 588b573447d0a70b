package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sadopc/studysync/internal/store"
)

type PomodoroConfig struct {
	Work      int `mapstructure:"work"`       // minutes
	Break     int `mapstructure:"break"`      // minutes
	LongBreak int `mapstructure:"long_break"` // minutes
}

type ProfileConfig struct {
	Name             string   `mapstructure:"name"`
	Email            string   `mapstructure:"email"`
	StudyGoal        int      `mapstructure:"study_goal"` // minutes per day
	FavoriteSubjects []string `mapstructure:"favorite_subjects"`
}

type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // TUI only; empty discards
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"` // empty means the home directory
}

type Config struct {
	Theme    string         `mapstructure:"theme"`
	Demo     bool           `mapstructure:"demo"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
}

func Default() Config {
	st := store.DefaultState()
	return Config{
		Theme: string(st.Theme),
		Pomodoro: PomodoroConfig{
			Work:      st.Pomodoro.WorkDuration,
			Break:     st.Pomodoro.BreakDuration,
			LongBreak: st.Pomodoro.LongBreakDuration,
		},
		Profile: ProfileConfig{
			Name:             st.Profile.Name,
			Email:            st.Profile.Email,
			StudyGoal:        st.Profile.StudyGoal,
			FavoriteSubjects: st.Profile.FavoriteSubjects,
		},
		Notify: NotifyConfig{Enabled: true},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.config/studysync/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studysync", "config.yaml"), nil
}

// Load reads the YAML file at path on top of the defaults, then applies
// STUDYSYNC_* environment overrides (STUDYSYNC_POMODORO_WORK=50). A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("studysync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("demo", cfg.Demo)
	v.SetDefault("pomodoro.work", cfg.Pomodoro.Work)
	v.SetDefault("pomodoro.break", cfg.Pomodoro.Break)
	v.SetDefault("pomodoro.long_break", cfg.Pomodoro.LongBreak)
	v.SetDefault("profile.name", cfg.Profile.Name)
	v.SetDefault("profile.email", cfg.Profile.Email)
	v.SetDefault("profile.study_goal", cfg.Profile.StudyGoal)
	v.SetDefault("profile.favorite_subjects", cfg.Profile.FavoriteSubjects)
	v.SetDefault("notify.enabled", cfg.Notify.Enabled)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("export.dir", cfg.Export.Dir)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validate: %w", err)
	}
	return cfg, nil
}

func (c Config) Settings() store.PomodoroSettings {
	return store.PomodoroSettings{
		WorkDuration:      c.Pomodoro.Work,
		BreakDuration:     c.Pomodoro.Break,
		LongBreakDuration: c.Pomodoro.LongBreak,
	}
}

func (c Config) Validate() error {
	if !store.Theme(c.Theme).IsValid() {
		return store.NewValidationError("theme", fmt.Sprintf("unknown theme %q", c.Theme))
	}
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if c.Profile.StudyGoal < 0 {
		return store.NewValidationError("profile.study_goal", "must not be negative")
	}
	return nil
}

// InitialState builds the state a new store starts from.
func (c Config) InitialState(now time.Time) store.State {
	st := store.DefaultState()
	if c.Demo {
		st = store.DemoState(now)
	}
	st.Theme = store.Theme(c.Theme)
	st.Pomodoro = c.Settings()
	st.Profile = store.UserProfile{
		Name:      c.Profile.Name,
		Email:     c.Profile.Email,
		StudyGoal: c.Profile.StudyGoal,
	}
	for _, s := range c.Profile.FavoriteSubjects {
		st.Profile = st.Profile.WithFavorite(s)
	}
	return st
}

// ExportDir resolves the directory exports are written to.
func (c Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	return os.UserHomeDir()
}
