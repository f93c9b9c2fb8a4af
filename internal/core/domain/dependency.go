// Package domain contains the core domain models for dependency reconciliation.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// PackageFinder is anything that can be searched for an installed package by name.
type PackageFinder interface {
	// FindPackage returns the first occurrence of the named package.
	FindPackage(name string) (*DependencyNode, bool)
	// Names yields every package name reachable from the finder.
	Names() iter.Seq[string]
}

// DependencyNode represents a single resolved package occurrence.
type DependencyNode struct {
	// From is the specifier the package was requested with (e.g., "^1.0.0").
	From string

	// Version is the concrete resolved version (e.g., "1.3.0"), never a range.
	Version string

	// Resolved is the source location the package was fetched from.
	Resolved string

	// Path is the on-disk location of the installed package.
	Path string

	// Dependencies holds the package's own transitive dependencies, if listed.
	Dependencies *DependencyTree
}

// FindPackage searches the node's nested dependencies.
func (n *DependencyNode) FindPackage(name string) (*DependencyNode, bool) {
	if n == nil {
		return nil, false
	}
	return n.Dependencies.FindPackage(name)
}

// DependencyTree is an ordered, name-keyed collection of DependencyNode.
// Names are unique within one level. A nil tree is valid and empty.
type DependencyTree struct {
	names []string
	nodes map[string]*DependencyNode
}

// NewDependencyTree creates an empty DependencyTree.
func NewDependencyTree() *DependencyTree {
	return &DependencyTree{
		nodes: make(map[string]*DependencyNode),
	}
}

// Add appends a node under the given name.
// It returns an error if the name is already present at this level.
func (t *DependencyTree) Add(name string, node *DependencyNode) error {
	if _, exists := t.nodes[name]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateDependency, "dependency "+name), "package", name)
	}
	t.names = append(t.names, name)
	t.nodes[name] = node
	return nil
}

// Get returns the direct child with the given name.
func (t *DependencyTree) Get(name string) (*DependencyNode, bool) {
	if t == nil {
		return nil, false
	}
	node, ok := t.nodes[name]
	return node, ok
}

// Len returns the number of direct children.
func (t *DependencyTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// All yields the direct children in insertion order.
func (t *DependencyTree) All() iter.Seq2[string, *DependencyNode] {
	return func(yield func(string, *DependencyNode) bool) {
		if t == nil {
			return
		}
		for _, name := range t.names {
			if !yield(name, t.nodes[name]) {
				return
			}
		}
	}
}

// Nodes yields the direct children in insertion order.
func (t *DependencyTree) Nodes() iter.Seq[*DependencyNode] {
	return func(yield func(*DependencyNode) bool) {
		for _, node := range t.All() {
			if !yield(node) {
				return
			}
		}
	}
}

// FindPackage searches the tree for the named package.
//
// Every entry at this level is matched before any child level is visited.
// Only when no sibling matches does the search descend, entry by entry, into
// each child tree using the same rule, stopping at the first hit.
func (t *DependencyTree) FindPackage(name string) (*DependencyNode, bool) {
	if node, ok := t.Get(name); ok {
		return node, true
	}
	return FindMap(t.Nodes(), func(child *DependencyNode) (*DependencyNode, bool) {
		return child.FindPackage(name)
	})
}

// Names yields every package name in the tree, depth-first.
// A name installed at several places is yielded once per occurrence.
func (t *DependencyTree) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		t.walkNames(yield)
	}
}

func (t *DependencyTree) walkNames(yield func(string) bool) bool {
	for name, node := range t.All() {
		if !yield(name) {
			return false
		}
		if node != nil && !node.Dependencies.walkNames(yield) {
			return false
		}
	}
	return true
}
