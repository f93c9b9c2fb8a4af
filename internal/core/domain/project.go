package domain

import "iter"

// Project is one workspace package as reported by the package manager.
type Project struct {
	Name    string
	Version string
	// Path is the absolute project directory.
	Path    string
	Private bool

	Dependencies    *DependencyTree
	DevDependencies *DependencyTree
}

// FindPackage searches the production tree, then the dev tree.
func (p *Project) FindPackage(name string) (*DependencyNode, bool) {
	if p == nil {
		return nil, false
	}
	if node, ok := p.Dependencies.FindPackage(name); ok {
		return node, true
	}
	return p.DevDependencies.FindPackage(name)
}

// Names yields every package name in the production tree, then the dev tree.
func (p *Project) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if p == nil {
			return
		}
		for name := range p.Dependencies.Names() {
			if !yield(name) {
				return
			}
		}
		for name := range p.DevDependencies.Names() {
			if !yield(name) {
				return
			}
		}
	}
}

// Tree returns the dependency tree matching a manifest section.
// Sections without an installed tree return nil.
func (p *Project) Tree(section Section) *DependencyTree {
	if p == nil {
		return nil
	}
	switch section {
	case SectionDependencies:
		return p.Dependencies
	case SectionDevDependencies:
		return p.DevDependencies
	default:
		return nil
	}
}
