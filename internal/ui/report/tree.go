package report

import (
	"io"

	"github.com/ddddddO/gtree"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/zerr"
)

// RenderTree writes one tree per workspace project. Development dependencies
// are marked with "(dev)".
func RenderTree(w io.Writer, ws *domain.Workspace) error {
	for project := range ws.Projects() {
		root := gtree.NewRoot(projectLabel(project))
		addTree(root, project.Dependencies, "")
		addTree(root, project.DevDependencies, " (dev)")

		if err := gtree.OutputFromRoot(w, root); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to render dependency tree"), "project", project.Name)
		}
	}
	return nil
}

func projectLabel(p *domain.Project) string {
	label := p.Name
	if label == "" {
		label = p.Path
	}
	if p.Version != "" {
		label += "@" + p.Version
	}
	if p.Private {
		label += " (private)"
	}
	return label
}

func addTree(parent *gtree.Node, tree *domain.DependencyTree, suffix string) {
	for name, node := range tree.All() {
		child := parent.Add(name + "@" + node.Version + suffix)
		addTree(child, node.Dependencies, "")
	}
}
