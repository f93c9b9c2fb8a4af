package domain

import (
	"iter"
	"slices"
)

// Workspace is the ordered list of projects returned by one package manager listing.
// The first project is the workspace root.
type Workspace struct {
	projects []*Project
}

// NewWorkspace creates a workspace from the listed projects, preserving order.
func NewWorkspace(projects ...*Project) *Workspace {
	return &Workspace{projects: slices.Clone(projects)}
}

// Projects yields the projects in listing order.
func (w *Workspace) Projects() iter.Seq[*Project] {
	return func(yield func(*Project) bool) {
		if w == nil {
			return
		}
		for _, p := range w.projects {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of projects.
func (w *Workspace) Len() int {
	if w == nil {
		return 0
	}
	return len(w.projects)
}

// Root returns the first listed project.
func (w *Workspace) Root() (*Project, error) {
	if w.Len() == 0 {
		return nil, ErrNoProjects
	}
	return w.projects[0], nil
}

// FindPackage searches each project in listing order and returns the first hit.
func (w *Workspace) FindPackage(name string) (*DependencyNode, bool) {
	return FindMap(w.Projects(), func(p *Project) (*DependencyNode, bool) {
		return p.FindPackage(name)
	})
}

// Names yields every package name of every project.
func (w *Workspace) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for p := range w.Projects() {
			for name := range p.Names() {
				if !yield(name) {
					return
				}
			}
		}
	}
}
