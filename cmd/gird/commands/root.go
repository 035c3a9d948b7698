// Package commands implements the CLI commands for the gird launcher.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/gird/internal/adapters/config"
	"go.trai.ch/gird/internal/adapters/girdfile"
	"go.trai.ch/gird/internal/core/ports"
)

// CLI represents the launcher's command line interface. Everything but
// the version subcommand is forwarded verbatim to the girdfile program.
type CLI struct {
	loader  ports.SettingsLoader
	runner  *girdfile.Runner
	rootCmd *cobra.Command
}

// New creates a new launcher CLI.
func New() *CLI {
	c := &CLI{
		loader: config.NewLoader(),
		runner: girdfile.NewRunner(),
	}

	rootCmd := &cobra.Command{
		Use:   "gird",
		Short: "Locate the girdfile and run it",
		// Arguments belong to the girdfile program; parse nothing here
		// beyond the girdfile override.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.forward(cmd.Context(), args)
		},
	}
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func (c *CLI) forward(ctx context.Context, args []string) error {
	explicit, rest := extractGirdfileFlag(args)

	settings, err := c.loader.Load(".")
	if err != nil {
		return err
	}

	path, err := girdfile.Locate(".", explicit, settings.Girdfile)
	if err != nil {
		return err
	}

	return c.runner.Run(ctx, path, rest, os.Stdin, os.Stdout, os.Stderr)
}

// extractGirdfileFlag pulls -f/--girdfile out of the argument list; the
// remaining arguments go to the girdfile program untouched.
func extractGirdfileFlag(args []string) (string, []string) {
	var explicit string
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-f" || arg == "--girdfile":
			if i+1 < len(args) {
				explicit = args[i+1]
				i++
			}
		case len(arg) > len("--girdfile=") && arg[:len("--girdfile=")] == "--girdfile=":
			explicit = arg[len("--girdfile="):]
		default:
			rest = append(rest, arg)
		}
	}
	return explicit, rest
}
