// Package cli wires the hilabel commands.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/interpretive-systems/hilabel/internal/config"
	"github.com/interpretive-systems/hilabel/internal/log"
)

// options carries the persistent flags and the loaded configuration to the
// subcommands.
type options struct {
	configPath string
	debug      bool
	logFile    string

	cfg      config.Config
	used     string
	closeLog func()
}

func Execute() error {
	// Query the terminal background before Bubble Tea owns the input, so
	// the reply does not leak into the program.
	_ = lipgloss.HasDarkBackground()

	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "hilabel",
		Short: "Tappable highlight regions for terminal labels",
		Long: `hilabel attaches tappable highlight regions to terminal text labels.

Regions light up while pressed and report a tap when released on them.
Use "demo" for the interactive showcase and "locate" to query a hit test
from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ./.hilabel/config.yaml, then ~/.config/hilabel/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false,
		"write a debug log (also HILABEL_DEBUG=1)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"debug log path (default: log.path from the config)")

	root.AddCommand(newDemoCmd(opts), newLocateCmd(opts), newInitConfigCmd(opts))
	return root
}

// setup loads and validates the configuration and starts the debug log.
func (o *options) setup() error {
	cfg, used, err := config.Load(viper.New(), o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	o.cfg, o.used = cfg, used

	if o.debug || cfg.Log.Debug || log.EnabledFromEnv() {
		path := o.logFile
		if path == "" {
			path = cfg.Log.Path
		}
		closeLog, err := log.Init(path)
		if err != nil {
			return err
		}
		o.closeLog = closeLog
		log.Info(log.CatConfig, "config", "file", used, "strategy", cfg.Strategy, "mode", cfg.BreakMode)
	}
	return nil
}

func (o *options) teardown() {
	if o.closeLog != nil {
		o.closeLog()
		o.closeLog = nil
		log.Reset()
	}
}
