package commands

import "github.com/spf13/cobra"

func (c *CLI) newWorkspaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workspace",
		Short: "Sync every workspace project and its pnpm-lock.yaml importer",
		Long: "Lists every workspace project with pnpm, rewrites each project's package.json " +
			"against its own installed trees, then rewrites the matching lockfile importers. " +
			"Nothing is written unless every project succeeds.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.sync(cmd, c.app.SyncWorkspace)
		},
	}
}
