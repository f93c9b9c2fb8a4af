package pnpm

import (
	"bytes"

	"github.com/mailru/easyjson/jlexer"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/zerr"
)

// parseWorkspace decodes package manager JSON output into a workspace.
// Empty output is an empty workspace.
func parseWorkspace(data []byte) (*domain.Workspace, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewWorkspace(), nil
	}

	var dtos projectsDTO
	in := jlexer.Lexer{Data: data}
	dtos.UnmarshalEasyJSON(&in)
	in.Consumed()
	if err := in.Error(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedOutput, err.Error()), "bytes", len(data))
	}

	projects := make([]*domain.Project, 0, len(dtos))
	for i := range dtos {
		project, err := toProject(&dtos[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return domain.NewWorkspace(projects...), nil
}

func toProject(dto *projectDTO) (*domain.Project, error) {
	project := &domain.Project{
		Name:    dto.Name,
		Version: dto.Version,
		Path:    dto.Path,
		Private: dto.Private,
	}

	var err error
	if dto.HasDeps {
		if project.Dependencies, err = toTree(dto.Dependencies); err != nil {
			return nil, zerr.With(err, "project", dto.Name)
		}
	}
	if dto.HasDevDeps {
		if project.DevDependencies, err = toTree(dto.DevDependencies); err != nil {
			return nil, zerr.With(err, "project", dto.Name)
		}
	}
	return project, nil
}

func toTree(entries dependenciesDTO) (*domain.DependencyTree, error) {
	tree := domain.NewDependencyTree()
	for _, entry := range entries {
		node := &domain.DependencyNode{
			From:     entry.Dep.From,
			Version:  entry.Dep.Version,
			Resolved: entry.Dep.Resolved,
			Path:     entry.Dep.Path,
		}
		if len(entry.Dep.Dependencies) > 0 {
			children, err := toTree(entry.Dep.Dependencies)
			if err != nil {
				return nil, err
			}
			node.Dependencies = children
		}
		if err := tree.Add(entry.Name, node); err != nil {
			return nil, zerr.Wrap(err, domain.ErrMalformedOutput.Error())
		}
	}
	return tree, nil
}
