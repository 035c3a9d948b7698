package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/gird/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <target>",
		Short: "Run the rule of a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			question, _ := cmd.Flags().GetBool("question")
			jobs, _ := cmd.Flags().GetInt("jobs")
			progress, _ := cmd.Flags().GetBool("progress")
			outputSync, _ := cmd.Root().PersistentFlags().GetBool("output-sync")
			verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

			return c.components.App.Run(cmd.Context(), c.registry, args[0], app.RunOptions{
				DryRun:      dryRun,
				Question:    question,
				Parallelism: jobs,
				OutputSync:  outputSync,
				Verbose:     verbose,
				Progress:    progress,
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the commands and function calls that would be executed, but do not execute them.")
	cmd.Flags().BoolP("question", "q", false, "Do not run any commands or print anything; exit zero if the target is already up to date, nonzero otherwise.")
	cmd.Flags().IntP("jobs", "j", 0, "Bound for concurrently running parallel rules. Defaults to the configured parallelism.")
	cmd.Flags().Bool("progress", false, "Additionally record the run onto a progress tape.")

	return cmd
}
