// Package config provides configuration types, defaults, and loading for
// hilabel.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// LocalPath is the project-local config file, tried before the user one.
const LocalPath = ".hilabel/config.yaml"

// Config holds all application configuration.
type Config struct {
	Strategy  string         `mapstructure:"strategy" yaml:"strategy"`
	Lines     int            `mapstructure:"lines" yaml:"lines"`
	BreakMode string         `mapstructure:"break_mode" yaml:"break_mode"`
	Align     string         `mapstructure:"align" yaml:"align"`
	Width     int            `mapstructure:"width" yaml:"width"`
	Height    int            `mapstructure:"height" yaml:"height"`
	Colors    ColorConfig    `mapstructure:"colors" yaml:"colors"`
	Text      string         `mapstructure:"text" yaml:"text"`
	TextFile  string         `mapstructure:"text_file" yaml:"text_file,omitempty"`
	Regions   []RegionConfig `mapstructure:"regions" yaml:"regions"`
	Log       LogConfig      `mapstructure:"log" yaml:"log"`
}

// ColorConfig holds the container colours. Empty means unset.
type ColorConfig struct {
	Normal     string `mapstructure:"normal" yaml:"normal"`
	Highlight  string `mapstructure:"highlight" yaml:"highlight"`
	Background string `mapstructure:"background" yaml:"background"`
}

// RegionConfig registers a region by substring.
type RegionConfig struct {
	Text            string `mapstructure:"text" yaml:"text"`
	At              int    `mapstructure:"at" yaml:"at,omitempty"`
	Color           string `mapstructure:"color" yaml:"color,omitempty"`
	HighlightColor  string `mapstructure:"highlight_color" yaml:"highlight_color,omitempty"`
	BackgroundColor string `mapstructure:"background_color" yaml:"background_color,omitempty"`
	Tag             int    `mapstructure:"tag" yaml:"tag,omitempty"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Strategy:  "layout",
		Lines:     0,
		BreakMode: "word",
		Align:     "left",
		Width:     48,
		Height:    6,
		Colors: ColorConfig{
			Normal:     "#5fafff",
			Highlight:  "#ffffff",
			Background: "#005f87",
		},
		Text: "Read the docs, skim the changelog or open the issue tracker. " +
			"Every link is a region: the docs link appears twice, so both docs are tappable.",
		Regions: []RegionConfig{
			{Text: "docs", Tag: 1},
			{Text: "changelog", Tag: 2, Color: "#87d787"},
			{Text: "issue tracker", Tag: 3, BackgroundColor: "#870000"},
			{Text: "docs", At: 1, Tag: 4},
		},
		Log: LogConfig{Path: "hilabel-debug.log"},
	}
}

// SetDefaults registers Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("lines", d.Lines)
	v.SetDefault("break_mode", d.BreakMode)
	v.SetDefault("align", d.Align)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("colors.normal", d.Colors.Normal)
	v.SetDefault("colors.highlight", d.Colors.Highlight)
	v.SetDefault("colors.background", d.Colors.Background)
	v.SetDefault("text", d.Text)
	v.SetDefault("text_file", d.TextFile)
	v.SetDefault("regions", d.Regions)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads configuration into a Config. An explicit path must exist;
// otherwise LocalPath and then ~/.config/hilabel/config.yaml are tried and
// a missing file just means defaults. HILABEL_* environment variables
// override file values. Returns the config file used, if any.
func Load(v *viper.Viper, path string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix("HILABEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(LocalPath):
		v.SetConfigFile(LocalPath)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hilabel"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	used := v.ConfigFileUsed()
	log.Info(log.CatConfig, "loaded", "file", used, "strategy", cfg.Strategy)
	return cfg, used, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := hittest.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if _, err := layout.ParseBreakMode(c.BreakMode); err != nil {
		return fmt.Errorf("break_mode: %w", err)
	}
	if _, err := layout.ParseAlign(c.Align); err != nil {
		return fmt.Errorf("align: %w", err)
	}
	if c.Lines < 0 {
		return fmt.Errorf("lines: must not be negative, got %d", c.Lines)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size: must not be negative, got %dx%d", c.Width, c.Height)
	}
	for i, r := range c.Regions {
		if r.Text == "" {
			return fmt.Errorf("region %d: text is required", i)
		}
		if r.At < 0 {
			return fmt.Errorf("region %d: at must not be negative", i)
		}
	}
	return nil
}

// HitStrategy returns the configured hit-test strategy.
func (c Config) HitStrategy() hittest.Strategy {
	s, _ := hittest.ParseStrategy(c.Strategy)
	return s
}

// Params returns the layout parameters for a label.
func (c Config) Params() layout.Params {
	mode, _ := layout.ParseBreakMode(c.BreakMode)
	align, _ := layout.ParseAlign(c.Align)
	return layout.Params{Width: c.Width, Height: c.Height, MaxLines: c.Lines, Mode: mode, Align: align}
}

// Style returns the container style.
func (c Config) Style() highlight.Style {
	return highlight.Style{
		Color:           richtext.Color(c.Colors.Normal),
		HighlightColor:  richtext.Color(c.Colors.Highlight),
		BackgroundColor: richtext.Color(c.Colors.Background),
	}
}

// Apply registers the configured regions on h in order.
func (c Config) Apply(h *highlight.Highlight) {
	for _, r := range c.Regions {
		h.SetByText(r.Text, r.At,
			highlight.Color(richtext.Color(r.Color)),
			highlight.HighlightColor(richtext.Color(r.HighlightColor)),
			highlight.BackgroundColor(richtext.Color(r.BackgroundColor)),
			highlight.Tag(r.Tag),
		)
	}
}

// ResolveText returns the configured text, read from TextFile when set.
func (c Config) ResolveText() (string, error) {
	if c.TextFile == "" {
		return c.Text, nil
	}
	b, err := os.ReadFile(c.TextFile)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// DefaultConfigTemplate returns the default configuration as commented YAML.
func DefaultConfigTemplate() (string, error) {
	b, err := yaml.Marshal(Defaults())
	if err != nil {
		return "", fmt.Errorf("marshaling defaults: %w", err)
	}
	header := "# hilabel configuration\n" +
		"# strategy: layout | pixel\n" +
		"# break_mode: word | char | clip | head | tail | middle\n" +
		"# lines: 0 means unlimited\n"
	return header + string(b), nil
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed.
func WriteDefaultConfig(path string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmpl, err := DefaultConfigTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(tmpl), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", path)
	return nil
}
