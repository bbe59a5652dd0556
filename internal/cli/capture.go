package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stigoleg/autoclick/internal/platform"
	"github.com/stigoleg/autoclick/internal/platform/inject"
	"github.com/stigoleg/autoclick/internal/util"
)

func newCaptureCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capture [x,y]",
		Short: "Show which window background mode would click",
		Long: `Report the window under a screen point, or under the cursor when no point
is given. When nothing is under the point the foreground window is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.initLogging(true)

			var at platform.Point
			if len(args) == 1 {
				x, y, err := util.ParsePoint(args[0])
				if err != nil {
					return err
				}
				at = platform.Point{X: x, Y: y}
			} else {
				p, err := inject.CursorPosition()
				if err != nil {
					return fmt.Errorf("read cursor position: %w", err)
				}
				at = p
			}

			window, err := inject.Capture(at)
			if err != nil {
				return fmt.Errorf("capture at %s: %w", at, err)
			}
			fmt.Fprintf(a.out, "Window %#x at %s\n", uintptr(window), at)
			return nil
		},
	}
}
