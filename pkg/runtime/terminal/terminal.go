package terminal

import (
	"io"
	"os"

	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain-atlas",
		Short: "Supply chain dataset analytics",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.reporter))
	cmd.AddCommand(commands.NewCorrelateCmd(cli.reporter))
	cmd.AddCommand(commands.NewKPIsCmd(cli.reporter))
	cmd.AddCommand(commands.NewProfileCmd(cli.reporter))
	cmd.AddCommand(commands.NewExportCmd())
	cmd.AddCommand(commands.NewSourcesCmd(cli.reporter))

	return cmd
}
