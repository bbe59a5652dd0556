//go:build darwin || linux

package platform

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/stigoleg/autoclick/internal/util"
)

// helperCommand builds a command for a helper binary resolved from PATH.
// A missing binary is reported as ErrUnsupported.
func helperCommand(ctx context.Context, name string, args ...string) (*exec.Cmd, error) {
	path, err := util.LookupCommand(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return exec.CommandContext(ctx, path, args...), nil
}
