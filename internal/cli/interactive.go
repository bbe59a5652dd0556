package cli

import (
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/ui"
)

// runInteractive shows the status surface until the user quits.
func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	a.initLogging(false)
	logger := zap.L().Named("tui")

	notifier := &ui.Notifier{}
	sess, err := a.newSession(clicker.WithAutoStop(notifier.AutoStopped))
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.cleanup.Execute(); err != nil {
			logger.Warn("cleanup finished with errors", zap.Error(err))
		}
	}()

	model := ui.InitialModel(sess.engine, sess.summary)
	model.SetVersion(a.version)

	p := ui.NewProgram(model, tea.WithOutput(a.out))
	notifier.Attach(p)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals()...)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal", zap.String("signal", sig.String()))
			sess.engine.Stop()
			p.Quit()
		case <-done:
		}
	}()

	if _, err := p.Run(); err != nil {
		logger.Error("status screen failed", zap.Error(err))
		return err
	}
	return nil
}
