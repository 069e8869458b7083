package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a run would check out, without fetching",
		Args:  cobra.NoArgs,
		RunE:  makePlanRunner(a),
	}

	return cmd
}

func makePlanRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cloner, err := a.setup(cmd)
		if err != nil {
			return err
		}

		plan, err := cloner.Plan(cmd.Context())
		if err != nil {
			return fmt.Errorf("plan: %w", err)
		}

		if asJSON {
			return writeJSON(cmd, planJSON(plan))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Working copy: %s (on %s)\n", plan.Location.LocalPath, describeHead(plan.Head))
		fmt.Fprintf(cmd.OutOrStdout(), "Newest tag:   %s (%d days old)\n", plan.Target.Tag.Name, plan.Target.Age)
		fmt.Fprintf(cmd.OutOrStdout(), "Action:       %s\n", plan.Target)
		return nil
	}
}
