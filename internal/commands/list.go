package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/gird/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all defined rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			question, _ := cmd.Flags().GetBool("question")

			return c.components.App.List(cmd.OutOrStdout(), c.registry, app.ListOptions{
				All:      all,
				Question: question,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Include also rules declared as unlisted.")
	cmd.Flags().BoolP("question", "q", false, "Mark with '*' the rules that have a non-phony target that is not up to date.")

	return cmd
}
