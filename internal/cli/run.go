package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/util"
)

func newRunCommand(a *app) *cobra.Command {
	var runFor string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Click without the interactive screen",
		Long: `Start clicking immediately and keep going until the click limit is reached,
the --for duration elapses, or the process receives an interrupt.
On Unix, Ctrl+Z (SIGTSTP) pauses and resumes clicking.`,
		Example: `  autoclick run --interval 250 --limit 100
  autoclick run -H --mode exponential --mean 400ms --for 10m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.initLogging(true)

			var maxRun time.Duration
			if runFor != "" {
				d, err := util.ParseDuration(runFor)
				if err != nil {
					return fmt.Errorf("invalid --for: %w", err)
				}
				maxRun = d
			}

			stopped := make(chan clicker.StopReason, 1)
			sess, err := a.newSession(clicker.WithAutoStop(func(r clicker.StopReason) {
				select {
				case stopped <- r:
				default:
				}
			}))
			if err != nil {
				return err
			}
			defer func() {
				if err := sess.cleanup.Execute(); err != nil {
					zap.L().Warn("cleanup finished with errors", zap.Error(err))
				}
			}()

			// Signals are caught before the run starts so an early Ctrl+Z
			// cannot suspend the process.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, append(shutdownSignals(), pauseSignals()...)...)
			defer signal.Stop(sigCh)

			if err := sess.engine.Start(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Clicking. Press Ctrl+C to stop.")
			return a.waitHeadless(cmd.Context(), sess.engine, sigCh, stopped, maxRun)
		},
	}

	cmd.Flags().StringVar(&runFor, "for", "", "stop after this long (e.g. 90s, 10m)")
	return cmd
}

// waitHeadless blocks until the run ends and reports how it ended.
func (a *app) waitHeadless(ctx context.Context, engine *clicker.Clicker, sigCh <-chan os.Signal, stopped <-chan clicker.StopReason, maxRun time.Duration) error {
	logger := zap.L().Named("run")

	var deadline <-chan time.Time
	if maxRun > 0 {
		timer := time.NewTimer(maxRun)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case sig := <-sigCh:
			if isPauseSignal(sig) {
				if engine.Running() {
					engine.Stop()
					fmt.Fprintf(a.out, "Paused after %d clicks.\n", engine.ClickCount())
					continue
				}
				if err := engine.Start(); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Resumed.")
				continue
			}
			logger.Info("received signal", zap.String("signal", sig.String()))
			engine.Stop()
			fmt.Fprintf(a.out, "Stopped after %d clicks.\n", engine.ClickCount())
			return nil

		case reason := <-stopped:
			fmt.Fprintf(a.out, "Stopped after %d clicks: %s.\n", engine.ClickCount(), reason)
			if reason == clicker.StopTargetLost {
				return errors.New("background window closed while clicking")
			}
			return nil

		case <-deadline:
			engine.Stop()
			fmt.Fprintf(a.out, "Stopped after %d clicks: %s elapsed.\n", engine.ClickCount(), maxRun)
			return nil

		case <-ctx.Done():
			engine.Stop()
			return ctx.Err()
		}
	}
}
