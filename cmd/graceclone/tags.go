package main

import (
	"fmt"

	"github.com/4thel00z/graceclone/internal"
	"github.com/spf13/cobra"
)

func NewTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags of the working copy, newest first",
		Long:  `List the tags already present in the working copy. Nothing is fetched.`,
		Args:  cobra.NoArgs,
		RunE:  makeTagsRunner(a),
	}

	cmd.Flags().IntP("number", "n", 0, "Limit number of tags (0 for all)")
	return cmd
}

func makeTagsRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("number")
		asJSON, _ := cmd.Flags().GetBool("json")

		cloner, err := a.setup(cmd)
		if err != nil {
			return err
		}

		tags, err := cloner.Tags(cmd.Context())
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		if limit > 0 && len(tags) > limit {
			tags = tags[:limit]
		}

		now := a.now().UTC()
		if asJSON {
			return writeJSON(cmd, tagsJSON(tags, now))
		}

		for _, tag := range tags {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s (%d days)\n",
				shortHash(tag.Hash), tag.Name, tag.Committed.Format("2006-01-02"),
				internal.WholeDays(now.Sub(tag.Committed)))
		}
		return nil
	}
}
