package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stigoleg/autoclick/internal/cli"
)

// This small tool generates shell completions and a man page from the
// command tree, so both stay in sync with --help.

const (
	appName        = "autoclick"
	appDescription = "A cross-platform auto clicker with human-like timing."
)

func main() {
	root := cli.NewRootCommand("docs")

	if err := writeCompletions(root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan(root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	if err := root.GenBashCompletionFileV2(filepath.Join(base, appName+".bash"), true); err != nil {
		return err
	}
	if err := root.GenZshCompletionFile(filepath.Join(base, "_"+appName)); err != nil {
		return err
	}
	return root.GenFishCompletionFile(filepath.Join(base, appName+".fish"), true)
}

func writeMan(root *cobra.Command) error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"autoclick\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " \\- " + appDescription + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n[command] [flags]\n")
	b.WriteString(".SH DESCRIPTION\n" + escape(root.Long) + "\n")

	b.WriteString(".SH COMMANDS\n")
	for _, c := range root.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		b.WriteString(".TP\n\\fB" + c.Name() + "\\fR\n" + escape(c.Short) + "\n")
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() {
				b.WriteString(".TP\n\\fB" + c.Name() + " " + sub.Name() + "\\fR\n" + escape(sub.Short) + "\n")
			}
		}
	}

	b.WriteString(".SH OPTIONS\n")
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		b.WriteString(".TP\n\\fB" + flagNames(f) + "\\fR\n" + escape(f.Usage) + "\n")
	})

	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\\fB" + appName + "\\fR\nShow the interactive status screen.\n")
	b.WriteString(".TP\n\\fB" + appName + " run \\-\\-interval 250 \\-\\-limit 100\\fR\nClick every 250ms, 100 times.\n")
	b.WriteString(".TP\n\\fB" + appName + " run \\-H \\-\\-mode exponential \\-\\-for 10m\\fR\nHuman-like clicking for ten minutes.\n")
	b.WriteString(".TP\n\\fB" + appName + " config init\\fR\nWrite autoclick.yaml with the defaults.\n")
	b.WriteString(".SH SEE ALSO\nProject homepage: https://github.com/stigoleg/autoclick\n")
	return os.WriteFile(filepath.Join("man", appName+".1"), []byte(b.String()), 0o644)
}

func flagNames(f *pflag.Flag) string {
	names := "\\-\\-" + escape(f.Name)
	if f.Shorthand != "" {
		names = "\\-" + f.Shorthand + ", " + names
	}
	if f.Value.Type() != "bool" {
		names += " <" + f.Value.Type() + ">"
	}
	return names
}

func escape(s string) string {
	return strings.ReplaceAll(s, "-", "\\-")
}
