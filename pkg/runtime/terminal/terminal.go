package terminal

import (
	"io"
	"os"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/runtime/terminal/commands"
	reporting "github.com/de-tools/govern-atlas/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	session  commands.Session
	registry export.Registry
	reporter *reporting.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Session  commands.Session
	Registry export.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		session:  opts.Session,
		registry: opts.Registry,
		reporter: reporting.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "govern",
		Short: "Governance assessment tool",
	}

	cmd.AddCommand(commands.NewScoreCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewGapsCmd(cli.session))
	cmd.AddCommand(commands.NewBaselineCmd(cli.session))
	cmd.AddCommand(commands.NewTasksCmd(cli.session))
	cmd.AddCommand(commands.NewAuditCmd(cli.session))
	cmd.AddCommand(commands.NewExportCmd(cli.session, cli.registry))
	cmd.AddCommand(commands.NewImportCmd(cli.session))
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
