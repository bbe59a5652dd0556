// Package config loads user settings through viper and turns them into a
// validated click engine configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/humanize"
	"github.com/stigoleg/autoclick/internal/observability"
	"github.com/stigoleg/autoclick/internal/platform"
	"github.com/stigoleg/autoclick/internal/util"
)

// EnvPrefix prefixes every environment override, e.g. AUTOCLICK_CLICK_INTERVAL.
const EnvPrefix = "AUTOCLICK"

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "autoclick.yaml"

// Duration is a time.Duration that is written to YAML as "150ms" rather than
// integer nanoseconds, so saved files read back unchanged.
type Duration time.Duration

// MarshalYAML writes the duration in Go notation.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// Settings is the on-disk and environment configuration.
type Settings struct {
	Click      ClickSettings      `mapstructure:"click" yaml:"click"`
	Humanize   HumanizeSettings   `mapstructure:"humanize" yaml:"humanize"`
	Background BackgroundSettings `mapstructure:"background" yaml:"background"`
	KeepAwake  bool               `mapstructure:"keep_awake" yaml:"keep_awake"`
	Logger     LoggerSettings     `mapstructure:"logger" yaml:"logger"`
}

type ClickSettings struct {
	IntervalMode    string   `mapstructure:"interval_mode" yaml:"interval_mode"`
	Interval        Duration `mapstructure:"interval" yaml:"interval"`
	RandomInterval  Duration `mapstructure:"random_interval" yaml:"random_interval"`
	ExpMeanInterval Duration `mapstructure:"exp_mean_interval" yaml:"exp_mean_interval"`
	Type            string   `mapstructure:"type" yaml:"type"`
	Button          string   `mapstructure:"button" yaml:"button"`
	// Target is "x,y"; empty clicks at the cursor.
	Target  string `mapstructure:"target" yaml:"target"`
	SpreadX int    `mapstructure:"spread_x" yaml:"spread_x"`
	SpreadY int    `mapstructure:"spread_y" yaml:"spread_y"`
	Limit   int    `mapstructure:"limit" yaml:"limit"`
}

type HumanizeSettings struct {
	Enabled bool            `mapstructure:"enabled" yaml:"enabled"`
	Hold    HoldSettings    `mapstructure:"hold" yaml:"hold"`
	Drift   DriftSettings   `mapstructure:"drift" yaml:"drift"`
	Pause   PauseSettings   `mapstructure:"pause" yaml:"pause"`
	Fatigue FatigueSettings `mapstructure:"fatigue" yaml:"fatigue"`
}

type HoldSettings struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Mean    Duration `mapstructure:"mean" yaml:"mean"`
	StdDev  Duration `mapstructure:"std_dev" yaml:"std_dev"`
}

// DriftSettings are in pixels.
type DriftSettings struct {
	Enabled  bool    `mapstructure:"enabled" yaml:"enabled"`
	StepMin  float64 `mapstructure:"step_min" yaml:"step_min"`
	StepMax  float64 `mapstructure:"step_max" yaml:"step_max"`
	ResetMin float64 `mapstructure:"reset_min" yaml:"reset_min"`
	ResetMax float64 `mapstructure:"reset_max" yaml:"reset_max"`
}

type PauseSettings struct {
	Enabled   bool     `mapstructure:"enabled" yaml:"enabled"`
	Mean      Duration `mapstructure:"mean" yaml:"mean"`
	StdDev    Duration `mapstructure:"std_dev" yaml:"std_dev"`
	MinClicks int      `mapstructure:"min_clicks" yaml:"min_clicks"`
	MaxClicks int      `mapstructure:"max_clicks" yaml:"max_clicks"`
}

type FatigueSettings struct {
	Enabled     bool     `mapstructure:"enabled" yaml:"enabled"`
	Threshold   Duration `mapstructure:"threshold" yaml:"threshold"`
	Duration    Duration `mapstructure:"duration" yaml:"duration"`
	Cooldown    Duration `mapstructure:"cooldown" yaml:"cooldown"`
	MinInterval Duration `mapstructure:"min_interval" yaml:"min_interval"`
}

// BackgroundSettings selects message injection into a captured window.
type BackgroundSettings struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Capture is the "x,y" point whose window is captured; empty uses the
	// target, then the cursor.
	Capture string `mapstructure:"capture" yaml:"capture"`
}

type LoggerSettings struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	d := clicker.DefaultConfig()

	v.SetDefault("click.interval_mode", d.Interval.Mode.String())
	v.SetDefault("click.interval", d.Interval.Base.String())
	v.SetDefault("click.random_interval", d.Interval.Spread.String())
	v.SetDefault("click.exp_mean_interval", d.Interval.Mean.String())
	v.SetDefault("click.type", d.ClickType.String())
	v.SetDefault("click.button", d.Button.String())
	v.SetDefault("click.target", "")
	v.SetDefault("click.spread_x", 0)
	v.SetDefault("click.spread_y", 0)
	v.SetDefault("click.limit", 0)

	v.SetDefault("humanize.enabled", false)
	v.SetDefault("humanize.hold.enabled", d.Hold.Enabled)
	v.SetDefault("humanize.hold.mean", d.Hold.Mean.String())
	v.SetDefault("humanize.hold.std_dev", d.Hold.StdDev.String())
	v.SetDefault("humanize.drift.enabled", d.Drift.Enabled)
	v.SetDefault("humanize.drift.step_min", d.Drift.StepMin)
	v.SetDefault("humanize.drift.step_max", d.Drift.StepMax)
	v.SetDefault("humanize.drift.reset_min", d.Drift.ResetMin)
	v.SetDefault("humanize.drift.reset_max", d.Drift.ResetMax)
	v.SetDefault("humanize.pause.enabled", d.Pause.Enabled)
	v.SetDefault("humanize.pause.mean", d.Pause.Mean.String())
	v.SetDefault("humanize.pause.std_dev", d.Pause.StdDev.String())
	v.SetDefault("humanize.pause.min_clicks", d.Pause.MinClicks)
	v.SetDefault("humanize.pause.max_clicks", d.Pause.MaxClicks)
	v.SetDefault("humanize.fatigue.enabled", d.Fatigue.Enabled)
	v.SetDefault("humanize.fatigue.threshold", d.Fatigue.Threshold.String())
	v.SetDefault("humanize.fatigue.duration", d.Fatigue.Duration.String())
	v.SetDefault("humanize.fatigue.cooldown", d.Fatigue.Cooldown.String())
	v.SetDefault("humanize.fatigue.min_interval", d.Fatigue.MinInterval.String())

	v.SetDefault("background.enabled", false)
	v.SetDefault("background.capture", "")
	v.SetDefault("keep_awake", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// NewViper returns a viper instance with defaults and environment overrides
// wired. Nested keys map to AUTOCLICK_SECTION_KEY.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads path into v. An empty path looks for DefaultFileName in the
// working directory, and a missing default file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// NewDefaultSettings returns the settings produced by the defaults alone.
func NewDefaultSettings() *Settings {
	v := viper.New()
	SetDefaults(v)
	s, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("failed to decode default settings: %v", err))
	}
	return s
}

// Load decodes v into Settings.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s, viper.DecodeHook(DecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// DecodeHook converts duration values. Strings use Go notation or a bare
// number; plain numbers are milliseconds.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationHook,
		mapstructure.StringToSliceHookFunc(","),
	)
}

var (
	durationType    = reflect.TypeOf(Duration(0))
	stdDurationType = reflect.TypeOf(time.Duration(0))
)

func durationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType && to != stdDurationType {
		return data, nil
	}
	if from == durationType || from == stdDurationType {
		return data, nil
	}

	var d time.Duration
	switch value := data.(type) {
	case string:
		parsed, err := util.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		d = parsed
	case int:
		d = time.Duration(value) * time.Millisecond
	case int64:
		d = time.Duration(value) * time.Millisecond
	case float64:
		d = time.Duration(value * float64(time.Millisecond))
	default:
		return data, nil
	}

	if to == durationType {
		return Duration(d), nil
	}
	return d, nil
}

// Save writes s to path as YAML.
func Save(s *Settings, path string) error {
	out, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders s as YAML.
func Marshal(s *Settings) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return out, nil
}

// Engine converts the settings into a validated engine configuration. The
// background window is not resolved here; callers capture it and set Window.
func (s *Settings) Engine() (clicker.Config, error) {
	var errs []error
	cfg := clicker.DefaultConfig()

	mode, err := humanize.ParseIntervalMode(s.Click.IntervalMode)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Interval = humanize.IntervalConfig{
		Mode:   mode,
		Base:   time.Duration(s.Click.Interval),
		Spread: time.Duration(s.Click.RandomInterval),
		Mean:   time.Duration(s.Click.ExpMeanInterval),
	}

	if cfg.ClickType, err = clicker.ParseClickType(s.Click.Type); err != nil {
		errs = append(errs, err)
	}
	if cfg.Button, err = platform.ParseButton(s.Click.Button); err != nil {
		errs = append(errs, err)
	}
	if target, err := parseOptionalPoint(s.Click.Target); err != nil {
		errs = append(errs, fmt.Errorf("click.target: %w", err))
	} else {
		cfg.Target = target
	}
	if s.Background.Enabled {
		if _, err := parseOptionalPoint(s.Background.Capture); err != nil {
			errs = append(errs, fmt.Errorf("background.capture: %w", err))
		}
	}

	cfg.Spread = humanize.Spread{X: s.Click.SpreadX, Y: s.Click.SpreadY}
	cfg.ClickLimit = s.Click.Limit

	h := s.Humanize
	cfg.Humanize = h.Enabled
	cfg.Hold = humanize.HoldConfig{
		Enabled: h.Hold.Enabled,
		Mean:    time.Duration(h.Hold.Mean),
		StdDev:  time.Duration(h.Hold.StdDev),
	}
	cfg.Drift = humanize.DriftConfig{
		Enabled:  h.Drift.Enabled,
		StepMin:  h.Drift.StepMin,
		StepMax:  h.Drift.StepMax,
		ResetMin: h.Drift.ResetMin,
		ResetMax: h.Drift.ResetMax,
	}
	cfg.Pause = humanize.PauseConfig{
		Enabled:   h.Pause.Enabled,
		Mean:      time.Duration(h.Pause.Mean),
		StdDev:    time.Duration(h.Pause.StdDev),
		MinClicks: h.Pause.MinClicks,
		MaxClicks: h.Pause.MaxClicks,
	}
	cfg.Fatigue = humanize.FatigueConfig{
		Enabled:     h.Fatigue.Enabled,
		Threshold:   time.Duration(h.Fatigue.Threshold),
		Duration:    time.Duration(h.Fatigue.Duration),
		Cooldown:    time.Duration(h.Fatigue.Cooldown),
		MinInterval: time.Duration(h.Fatigue.MinInterval),
	}

	if len(errs) == 0 {
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return clicker.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// CapturePoint returns where the background window should be captured:
// background.capture, else click.target, else nil for the cursor.
func (s *Settings) CapturePoint() (*platform.Point, error) {
	if s.Background.Capture != "" {
		return parseOptionalPoint(s.Background.Capture)
	}
	return parseOptionalPoint(s.Click.Target)
}

// LogOptions maps the logger section onto observability options.
func (s *Settings) LogOptions(console bool) observability.Options {
	return observability.Options{
		Level:       s.Logger.Level,
		Format:      s.Logger.Format,
		Console:     console,
		File:        s.Logger.File,
		MaxSizeMB:   s.Logger.MaxSize,
		MaxBackups:  s.Logger.MaxBackups,
		MaxAgeDays:  s.Logger.MaxAge,
		Compress:    s.Logger.Compress,
		ServiceName: "autoclick",
	}
}

func parseOptionalPoint(s string) (*platform.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	x, y, err := util.ParsePoint(s)
	if err != nil {
		return nil, err
	}
	return &platform.Point{X: x, Y: y}, nil
}
