package main

import (
	"fmt"
	"path/filepath"

	"github.com/4thel00z/graceclone/internal"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graceclone",
		Short: "Keep an ns-3-dev checkout on the latest release during its grace period",
		Long: `Clone or update ns-3-dev next to this tool and check out the newest
release tag if it was committed less than 45 days ago. Otherwise the
working copy stays on the development branch.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		rootCmd.RunE = makeRunRunner(a)
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewInitCmd(a),
		NewCheckCmd(a),
		NewTagsCmd(a),
		NewPlanCmd(a),
	)
}

// configPath is --config, or graceclone.yaml in the resolver's base
// directory.
func (a *app) configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return filepath.Join(a.resolver.BaseDir(), internal.DefaultConfigFile)
}

// loadConfig applies the precedence defaults < file < env < flags.
func (a *app) loadConfig(cmd *cobra.Command) (*internal.Config, error) {
	cfg, err := internal.LoadConfig(a.configPath(cmd))
	if err != nil {
		return nil, err
	}
	if err := internal.ApplyEnv(cmd.Context(), cfg, a.lookuper); err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setup attaches a logger to the command context and builds the cloner.
func (a *app) setup(cmd *cobra.Command) (*internal.ReleaseGraceCloner, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := internal.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(internal.WithLogger(cmd.Context(), cmd.ErrOrStderr(), level))

	return internal.NewReleaseGraceClonerFromConfig(cfg, a.resolver, a.checker, a.now)
}

func makeRunRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cloner, err := a.setup(cmd)
		if err != nil {
			return err
		}

		res, err := cloner.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %w", cloner.Location().LocalPath, err)
		}

		if asJSON {
			return writeJSON(cmd, runJSON(res))
		}

		if res.State == internal.StateCheckedOut {
			fmt.Fprintf(cmd.OutOrStdout(), "Checked out %s (%d days old)\n", res.Target.Tag.Name, res.Target.Age)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Latest release %s is %d days old, staying on %s\n",
			res.Target.Tag.Name, res.Target.Age, describeHead(res.Head))
		return nil
	}
}

func describeHead(h *internal.Head) string {
	if h == nil {
		return "current ref"
	}
	if h.Detached {
		return "detached HEAD " + shortHash(h.Hash)
	}
	return h.Name
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
