package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that git and the go-git binding are available",
		Args:  cobra.NoArgs,
		RunE:  makeCheckRunner(a),
	}

	return cmd
}

func makeCheckRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cloner, err := a.setup(cmd)
		if err != nil {
			return err
		}

		caps, checkErr := cloner.CheckDependencies(cmd.Context())

		if asJSON {
			if err := writeJSON(cmd, capabilitiesJSON(caps)); err != nil {
				return err
			}
			return checkErr
		}

		for _, cp := range caps {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-10s %s\n", cp.Name, cp.Status, cp.Detail)
		}
		return checkErr
	}
}
