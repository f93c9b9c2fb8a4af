package commands

import "github.com/spf13/cobra"

func (c *CLI) newLockfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lockfile",
		Short: "Sync package.json, then the root importer specifiers of pnpm-lock.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.sync(cmd, c.app.SyncLockfile)
		},
	}
}
