// Package commands implements the CLI surface a girdfile program exposes.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/gird/internal/app"
	"go.trai.ch/gird/internal/core/domain"
)

// CLI represents the command line interface of a girdfile program.
type CLI struct {
	components *app.Components
	registry   *domain.Registry
	rootCmd    *cobra.Command
}

// New creates a new CLI over the given components and rule registry.
func New(components *app.Components, reg *domain.Registry) *CLI {
	rootCmd := &cobra.Command{
		Use:           "gird",
		Short:         "List all rules or run a single rule",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The girdfile flag is consumed by the launcher before the girdfile
	// program ever runs; it is declared here so forwarded args parse.
	rootCmd.PersistentFlags().StringP("girdfile", "f", "", "Path to the file with rule definitions. Defaults to ./girdfile.go.")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Increase verbosity.")
	rootCmd.PersistentFlags().Bool("output-sync", false, "Collect the output of each parallel rule together rather than interspersed.")

	c := &CLI{
		components: components,
		registry:   reg,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. A bare target name is
// rewritten to the run subcommand, so `gird build` equals `gird run build`.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(c.normalize(args))
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// SetErr redirects command error output. Used for testing.
func (c *CLI) SetErr(w io.Writer) {
	c.rootCmd.SetErr(w)
}

var subcommands = map[string]bool{
	"run":        true,
	"list":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

// flags whose value arrives as a separate token.
var valueFlags = map[string]bool{
	"-f":         true,
	"--girdfile": true,
	"-j":         true,
	"--jobs":     true,
}

func (c *CLI) normalize(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			if valueFlags[arg] {
				i++
			}
			continue
		}
		if subcommands[arg] {
			return args
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "run")
		out = append(out, args[i:]...)
		return out
	}
	return args
}
