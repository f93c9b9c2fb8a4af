// Package commands implements the CLI commands for locksmith.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/locksmith/internal/app"
	"go.trai.ch/locksmith/internal/build"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/ui/report"
)

// CLI represents the command line interface for locksmith.
type CLI struct {
	app     Application
	logs    LogControl
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SyncManifest(ctx context.Context, opts app.Options) (*app.Report, error)
	SyncLockfile(ctx context.Context, opts app.Options) (*app.Report, error)
	SyncWorkspace(ctx context.Context, opts app.Options) (*app.Report, error)
	Tree(ctx context.Context, opts app.Options, treeOpts app.TreeOptions) (*domain.Workspace, error)
}

// LogControl adjusts the logger from global flags.
type LogControl interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogControl) *CLI {
	rootCmd := &cobra.Command{
		Use:           "locksmith",
		Short:         "Sync package.json ranges with the versions pnpm installed",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Workspace root directory")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default locksmith.yaml)")
	rootCmd.PersistentFlags().BoolP("dry-run", "n", false, "Compute changes without writing any file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = c.configureLogs
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return c.sync(cmd, c.app.SyncManifest)
	}

	rootCmd.AddCommand(c.newLockfileCmd())
	rootCmd.AddCommand(c.newWorkspaceCmd())
	rootCmd.AddCommand(c.newTreeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogs(cmd *cobra.Command, _ []string) {
	if c.logs == nil {
		return
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	c.logs.SetVerbose(verbose)
	c.logs.SetJSON(jsonLogs)
}

func options(cmd *cobra.Command) app.Options {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return app.Options{
		Dir:        dir,
		ConfigPath: configPath,
		DryRun:     dryRun,
	}
}

type syncFunc func(ctx context.Context, opts app.Options) (*app.Report, error)

func (c *CLI) sync(cmd *cobra.Command, run syncFunc) error {
	res, err := run(cmd.Context(), options(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.RenderChanges(out, res.Changes); err != nil {
		return err
	}
	return report.RenderSummary(out, res.Message, res.DryRun)
}
