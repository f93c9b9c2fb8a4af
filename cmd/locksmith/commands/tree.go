package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/locksmith/internal/app"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/ui/report"
	"go.trai.ch/zerr"
)

func (c *CLI) newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the installed dependency tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recursive, _ := cmd.Flags().GetBool("recursive")
			treeOpts := app.TreeOptions{Recursive: recursive}
			if cmd.Flags().Changed("depth") {
				depth, _ := cmd.Flags().GetInt("depth")
				if depth < 0 {
					return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "depth must be >= 0"), "depth", depth)
				}
				treeOpts.Depth = &depth
			}

			ws, err := c.app.Tree(cmd.Context(), options(cmd), treeOpts)
			if err != nil {
				return err
			}
			return report.RenderTree(cmd.OutOrStdout(), ws)
		},
	}
	cmd.Flags().BoolP("recursive", "r", false, "List every workspace project")
	cmd.Flags().IntP("depth", "d", 0, "Tree depth (default from config)")
	return cmd
}
