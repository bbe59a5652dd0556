// Package cli wires configuration, logging, the click engine and the status
// surface into the autoclick command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/config"
	"github.com/stigoleg/autoclick/internal/observability"
	"github.com/stigoleg/autoclick/internal/platform"
)

// PointerFactory creates the direct pointer backend.
type PointerFactory func() platform.Pointer

// Option customizes the command tree.
type Option func(*app)

// WithDirectBackend sets the backend used when background mode is off.
func WithDirectBackend(f PointerFactory) Option {
	return func(a *app) { a.direct = f }
}

// WithKeepAwake replaces the keep-awake guard constructor.
func WithKeepAwake(f func() (platform.KeepAlive, error)) Option {
	return func(a *app) { a.keepAwake = f }
}

// WithOutput redirects command output, mainly for tests.
func WithOutput(w io.Writer) Option {
	return func(a *app) { a.out = w }
}

// WithEngineOptions appends options passed to every engine the commands build.
func WithEngineOptions(opts ...clicker.Option) Option {
	return func(a *app) { a.engineOpts = append(a.engineOpts, opts...) }
}

type app struct {
	version    string
	configFile string
	v          *viper.Viper
	settings   *config.Settings

	direct     PointerFactory
	keepAwake  func() (platform.KeepAlive, error)
	engineOpts []clicker.Option
	out        io.Writer
}

// NewRootCommand builds the command tree. Without a subcommand the
// interactive status surface is shown.
func NewRootCommand(version string, opts ...Option) *cobra.Command {
	a := &app{
		version:   version,
		v:         config.NewViper(),
		keepAwake: platform.NewKeepAlive,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "autoclick",
		Short: "A cross-platform auto clicker with human-like timing.",
		Long: `autoclick clicks a mouse button on a schedule. Clicks can follow the cursor
or a fixed point, and optional humanization varies hold times, position,
pauses and pace the way a person would.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadSettings()
		},
		RunE: a.runInteractive,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.SetVersionTemplate(`{{printf "autoclick %s\n" .Version}}`)

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default is ./"+config.DefaultFileName+")")
	bindSettingsFlags(root.PersistentFlags(), a.v)

	root.AddCommand(
		newRunCommand(a),
		newCaptureCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the command tree and reports the error on stderr.
func Execute(version string, opts ...Option) int {
	root := NewRootCommand(version, opts...)
	if err := root.Execute(); err != nil {
		if logger := observability.GetLogger(); logger.Core().Enabled(zapcore.ErrorLevel) {
			logger.Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	observability.Sync()
	return 0
}

func (a *app) loadSettings() error {
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

// initLogging starts the global logger. The interactive surface owns the
// terminal, so it logs to a file only.
func (a *app) initLogging(console bool) {
	opts := a.settings.LogOptions(console)
	if !console && opts.File == "" {
		opts.File = filepath.Join(os.TempDir(), "autoclick.log")
	}
	observability.InitializeLogger(opts)
	observability.GetLogger().Info("autoclick starting", zap.String("version", a.version))
}

type flagBinding struct {
	key   string
	name  string
	short string
	usage string
	kind  string
}

var settingsFlags = []flagBinding{
	{key: "click.interval_mode", name: "mode", short: "m", usage: "interval model: uniform or exponential", kind: "string"},
	{key: "click.interval", name: "interval", short: "i", usage: "base interval between clicks (150 = 150ms, or 1.5s)", kind: "string"},
	{key: "click.random_interval", name: "random", usage: "extra uniform random interval added to the base", kind: "string"},
	{key: "click.exp_mean_interval", name: "mean", usage: "mean interval in exponential mode", kind: "string"},
	{key: "click.type", name: "type", short: "t", usage: "click type: single or double", kind: "string"},
	{key: "click.button", name: "button", short: "b", usage: "mouse button: left or right", kind: "string"},
	{key: "click.target", name: "target", short: "p", usage: "fixed click position as x,y (default follows the cursor)", kind: "string"},
	{key: "click.spread_x", name: "spread-x", usage: "horizontal position spread in pixels", kind: "int"},
	{key: "click.spread_y", name: "spread-y", usage: "vertical position spread in pixels", kind: "int"},
	{key: "click.limit", name: "limit", short: "n", usage: "stop after this many clicks (0 = unlimited)", kind: "int"},
	{key: "humanize.enabled", name: "humanize", short: "H", usage: "enable human-like timing and movement", kind: "bool"},
	{key: "background.enabled", name: "background", usage: "post clicks to a captured window instead of moving the cursor (Windows)", kind: "bool"},
	{key: "background.capture", name: "capture-at", usage: "x,y of the window to capture in background mode", kind: "string"},
	{key: "keep_awake", name: "keep-awake", usage: "keep the system awake while clicking", kind: "bool"},
	{key: "logger.level", name: "log-level", usage: "log level: debug, info, warn, error", kind: "string"},
	{key: "logger.file", name: "log-file", usage: "write JSON logs to this file", kind: "string"},
}

func bindSettingsFlags(flags *pflag.FlagSet, v *viper.Viper) {
	for _, f := range settingsFlags {
		switch f.kind {
		case "int":
			flags.IntP(f.name, f.short, v.GetInt(f.key), f.usage)
		case "bool":
			flags.BoolP(f.name, f.short, v.GetBool(f.key), f.usage)
		default:
			flags.StringP(f.name, f.short, v.GetString(f.key), f.usage)
		}
		// Lookup cannot fail for a flag registered above.
		_ = v.BindPFlag(f.key, flags.Lookup(f.name))
	}
}
