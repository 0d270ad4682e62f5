package cli

import (
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/tui"
)

func newDemoCmd(opts *options) *cobra.Command {
	var (
		strategy string
		textFile string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the interactive showcase",
		Long: `Open the interactive showcase.

The first label shows the configured text and regions. With --text-file (or
text_file in the config) the label follows the file: every save replaces
the text and the configured regions are registered again.

Display toggles (t, m, l) are saved back to the config file in use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("strategy") {
				if _, err := hittest.ParseStrategy(strategy); err != nil {
					return err
				}
				cfg.Strategy = strategy
			}
			if textFile != "" {
				cfg.TextFile = textFile
			}
			return tui.Run(cfg, opts.used)
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "hit-test strategy: layout or pixel")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", "file to show and watch for changes")
	return cmd
}
