package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/stigoleg/autoclick/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := targetPath(args)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := config.Save(config.NewDefaultSettings(), path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote default settings to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Write the effective settings, including flags and environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.settings.Engine(); err != nil {
				return err
			}
			path := targetPath(args)
			if err := config.Save(a.settings, path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved settings to %s\n", path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Marshal(a.settings)
			if err != nil {
				return err
			}
			_, err = a.out.Write(out)
			return err
		},
	}

	cmd.AddCommand(initCmd, saveCmd, showCmd)
	return cmd
}

func targetPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return config.DefaultFileName
}
