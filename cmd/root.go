package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sadopc/studysync/internal/config"
	"github.com/sadopc/studysync/internal/notify"
	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
	"github.com/sadopc/studysync/internal/tui"
)

var (
	cfgFile string
	demo    bool
)

var rootCmd = &cobra.Command{
	Use:   "studysync",
	Short: "Notes, tasks and a Pomodoro timer for studying",
	Long: `studysync keeps study notes, a task list and a Pomodoro timer in one
terminal UI. Everything lives in memory for the length of the session;
press x to export a snapshot.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/studysync/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "start with sample notes and tasks")

	rootCmd.AddCommand(focusCmd, versionCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if demo {
		cfg.Demo = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "studysync",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// newSession wires a store and Pomodoro controller from cfg.
func newSession(cfg config.Config, logger *log.Logger) (*store.Store, *pomodoro.Controller) {
	s := store.New(cfg.InitialState(time.Now()), store.WithLogger(logger))
	return s, pomodoro.NewController(s, pomodoro.WithLogger(logger))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}

	exportDir, err := cfg.ExportDir()
	if err != nil {
		return fmt.Errorf("export dir: %w", err)
	}

	s, ctrl := newSession(cfg, logger)
	defer ctrl.Close()

	app := tui.NewApp(s, ctrl,
		tui.WithNotifier(notify.New(cfg.Notify.Enabled)),
		tui.WithLogger(logger),
		tui.WithExportDir(exportDir),
	)
	logger.Info("starting", "theme", cfg.Theme, "demo", cfg.Demo)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
