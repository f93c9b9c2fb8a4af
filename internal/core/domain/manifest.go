package domain

// Section names a dependency map inside a manifest or lockfile.
type Section string

const (
	// SectionDependencies is the runtime dependency map.
	SectionDependencies Section = "dependencies"
	// SectionDevDependencies is the development dependency map.
	SectionDevDependencies Section = "devDependencies"
	// SectionResolutions is the yarn-style pinning map.
	SectionResolutions Section = "resolutions"
	// SectionOverrides is the nested pnpm.overrides map.
	SectionOverrides Section = "pnpm.overrides"
	// SectionSpecifiers is the specifier map of a lockfile importer.
	SectionSpecifiers Section = "specifiers"
	// SectionLockfileOverrides is the workspace-wide overrides map of the lockfile.
	SectionLockfileOverrides Section = "overrides"
)

// ManifestSections lists the manifest sections in synchronization order.
var ManifestSections = []Section{
	SectionDependencies,
	SectionDevDependencies,
	SectionResolutions,
	SectionOverrides,
}

// Manifest is the dependency view of a package.json document.
// A nil map means the field is absent from the document.
type Manifest struct {
	// Path is the file the manifest was read from.
	Path string

	Dependencies    *DependencyMap
	DevDependencies *DependencyMap
	Resolutions     *DependencyMap
	Overrides       *DependencyMap

	// Source holds the raw document bytes, used to preserve unknown fields on save.
	Source []byte
}

// Section returns the map stored for the given section.
func (m *Manifest) Section(section Section) *DependencyMap {
	switch section {
	case SectionDependencies:
		return m.Dependencies
	case SectionDevDependencies:
		return m.DevDependencies
	case SectionResolutions:
		return m.Resolutions
	case SectionOverrides:
		return m.Overrides
	default:
		return nil
	}
}

// SetSection replaces the map stored for the given section.
func (m *Manifest) SetSection(section Section, deps *DependencyMap) {
	switch section {
	case SectionDependencies:
		m.Dependencies = deps
	case SectionDevDependencies:
		m.DevDependencies = deps
	case SectionResolutions:
		m.Resolutions = deps
	case SectionOverrides:
		m.Overrides = deps
	}
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	return &Manifest{
		Path:            m.Path,
		Dependencies:    m.Dependencies.Clone(),
		DevDependencies: m.DevDependencies.Clone(),
		Resolutions:     m.Resolutions.Clone(),
		Overrides:       m.Overrides.Clone(),
		Source:          m.Source,
	}
}
