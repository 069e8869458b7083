package main

import (
	"fmt"
	"os"

	"github.com/4thel00z/graceclone/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Long: `Write graceclone.yaml next to the executable, or to --config, holding
the defaults with any GRACECLONE_* environment overrides applied.`,
		Args: cobra.NoArgs,
		RunE: makeInitRunner(a),
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func makeInitRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := a.configPath(cmd)

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		cfg := internal.DefaultConfig()
		if err := internal.ApplyEnv(cmd.Context(), cfg, a.lookuper); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := internal.SaveConfig(path, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
		return nil
	}
}
