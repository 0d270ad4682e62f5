package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/hilabel/internal/config"
)

func newInitConfigCmd(opts *options) *cobra.Command {
	var (
		user  bool
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		Long: `Write the default configuration file.

Writes ./.hilabel/config.yaml, or ~/.config/hilabel/config.yaml with --user,
or the path given with --config. An existing file is kept unless --force.`,
		// The file may not exist or may be invalid yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			switch {
			case path != "":
			case user:
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				path = filepath.Join(home, ".config", "hilabel", "config.yaml")
			default:
				path = config.LocalPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "write the per-user config instead of the project one")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
