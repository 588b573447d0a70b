package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sadopc/studysync/internal/notify"
	"github.com/sadopc/studysync/internal/pomodoro"
	"github.com/sadopc/studysync/internal/store"
)

var (
	focusLabel  string
	focusCycles int
)

// focusCmd runs the Pomodoro cycle without the TUI.
var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a Pomodoro timer in the terminal",
	Long: `Run work and break intervals back to back, with a desktop notification
at every boundary. Stops after --cycles work sessions, or on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if focusCycles < 0 {
			return fmt.Errorf("--cycles must not be negative")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		s, ctrl := newSession(cfg, logger)
		defer ctrl.Close()
		ctrl.SetLabel(focusLabel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		out := cmd.OutOrStdout()
		done, err := focusLoop(ctx, s, ctrl, notify.New(cfg.Notify.Enabled), ticker.C, focusCycles, out, logger)
		fmt.Fprintf(out, "%d session(s), %s studied\n", done, formatMinutes(done*cfg.Pomodoro.Work))
		return err
	},
}

func init() {
	focusCmd.Flags().StringVarP(&focusLabel, "label", "l", pomodoro.DefaultLabel, "Subject recorded for each session")
	focusCmd.Flags().IntVarP(&focusCycles, "cycles", "n", 0, "Stop after this many work sessions (0 runs until interrupted)")
}

// focusLoop runs the controller, restarting it after every boundary, until
// cycles work sessions are done or ctx ends. It returns the number of work
// sessions completed.
func focusLoop(ctx context.Context, s *store.Store, ctrl *pomodoro.Controller, n notify.Notifier,
	ticks <-chan time.Time, cycles int, out io.Writer, logger *log.Logger) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printCycle := func() {
		c := ctrl.Cycle()
		fmt.Fprintf(out, "%s  %s  [%s]\n", c.Label(), pomodoro.FormatClock(c.Remaining), ctrl.Label())
	}

	done := 0
	printCycle()
	ctrl.Start()
	err := ctrl.Run(ctx, ticks, func(tr pomodoro.Transition) {
		st := s.State()
		if err := notify.Transition(n, tr, st.Pomodoro, len(st.Sessions)); err != nil {
			logger.Warn("notification failed", "err", err)
		}
		if tr.Kind == pomodoro.WorkCompleted {
			done++
			if cycles > 0 && done >= cycles {
				cancel()
				return
			}
		}
		printCycle()
		ctrl.Start()
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return done, err
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
