package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tminus/internal/config"
)

func addConfig(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file.",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), configPath(opts))
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config unless one exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(opts)
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ready: %s (store=%s)\n", path, cfg.Store)
			return nil
		},
	}

	cmd.AddCommand(pathCmd, initCmd)
	topLevel.AddCommand(cmd)
}

func configPath(opts *globalOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return config.ResolvePath()
}
