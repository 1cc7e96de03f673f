package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cost-guardian/dashboard/pkg/runtime/terminal/commands"
	"github.com/cost-guardian/dashboard/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	factory    commands.ServiceFactory
	reporter   *export.Reporter
	jsonOutput *JSONReporter
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Factory builds the services once flags are parsed.
	Factory commands.ServiceFactory
	Output  io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		factory:    opts.Factory,
		reporter:   export.NewReporter(opts.Output),
		jsonOutput: NewJSONReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cost-guardian",
		Short:         "Cost Guardian dashboard data tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a config file (optional)")

	services := func(cmd *cobra.Command) (*commands.Services, error) {
		return cli.factory(cmd.Context(), cli.configPath)
	}

	cmd.AddCommand(commands.NewExportCmd(services, cli.jsonOutput))
	cmd.AddCommand(commands.NewQueryCmd(services, cli.reporter, cli.jsonOutput))

	return cmd
}
