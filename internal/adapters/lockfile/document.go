package lockfile

import (
	"go.trai.ch/locksmith/internal/core/domain"
	"gopkg.in/yaml.v3"
)

const (
	keyVersion    = "lockfileVersion"
	keyImporters  = "importers"
	keyOverrides  = "overrides"
	keySpecifiers = "specifiers"
	keySpecifier  = "specifier"
)

// dependencyKeys are the importer sections that carry per-dependency
// specifiers in lockfile v6 and later.
var dependencyKeys = []string{"dependencies", "devDependencies", "optionalDependencies"}

// importerNodes maps importer identifiers to their nodes. A lockfile without
// an importers section is a single-project lockfile whose top level is the root importer.
func importerNodes(root *yaml.Node) map[string]*yaml.Node {
	nodes := make(map[string]*yaml.Node)
	importers, ok := mappingValue(root, keyImporters)
	if !ok {
		nodes[domain.RootImporterID] = root
		return nodes
	}
	for key, value := range mappingPairs(importers) {
		nodes[key.Value] = value
	}
	return nodes
}

// readSpecifiers collects the specifiers of one importer from either layout.
func readSpecifiers(importer *yaml.Node) *domain.DependencyMap {
	specs := domain.NewDependencyMap()

	if legacy, ok := mappingValue(importer, keySpecifiers); ok {
		for key, value := range mappingPairs(legacy) {
			specs.Set(key.Value, value.Value)
		}
	}

	for _, section := range dependencyKeys {
		deps, ok := mappingValue(importer, section)
		if !ok {
			continue
		}
		for key, value := range mappingPairs(deps) {
			if spec, ok := mappingValue(value, keySpecifier); ok {
				if _, seen := specs.Get(key.Value); !seen {
					specs.Set(key.Value, spec.Value)
				}
			}
		}
	}

	return specs
}

// writeSpecifiers updates every recorded specifier of one importer in place.
func writeSpecifiers(importer *yaml.Node, specs *domain.DependencyMap) {
	if legacy, ok := mappingValue(importer, keySpecifiers); ok {
		for key, value := range mappingPairs(legacy) {
			if spec, ok := specs.Get(key.Value); ok {
				setScalar(value, spec)
			}
		}
	}

	for _, section := range dependencyKeys {
		deps, ok := mappingValue(importer, section)
		if !ok {
			continue
		}
		for key, value := range mappingPairs(deps) {
			node, ok := mappingValue(value, keySpecifier)
			if !ok {
				continue
			}
			if spec, ok := specs.Get(key.Value); ok {
				setScalar(node, spec)
			}
		}
	}
}

func readOverrides(root *yaml.Node) *domain.DependencyMap {
	node, ok := mappingValue(root, keyOverrides)
	if !ok || node.Kind != yaml.MappingNode {
		return nil
	}
	overrides := domain.NewDependencyMap()
	for key, value := range mappingPairs(node) {
		overrides.Set(key.Value, value.Value)
	}
	return overrides
}

func writeOverrides(root *yaml.Node, overrides *domain.DependencyMap) {
	node, ok := mappingValue(root, keyOverrides)
	if !ok {
		return
	}
	for key, value := range mappingPairs(node) {
		if spec, ok := overrides.Get(key.Value); ok {
			setScalar(value, spec)
		}
	}
}
