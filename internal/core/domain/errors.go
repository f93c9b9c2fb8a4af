package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileNotFound is returned when the workspace has no pnpm lockfile.
	ErrLockfileNotFound = zerr.New("lockfile not found")

	// ErrImporterNotFound is returned when a workspace project has no entry in the lockfile importers.
	ErrImporterNotFound = zerr.New("no main project found")

	// ErrDependencyNotFound is returned when a manifest dependency is missing from the installed tree.
	ErrDependencyNotFound = zerr.New("not found in pnpm dependencies")

	// ErrDependencyNotFoundInWhy is returned when a pinned dependency is missing from the pnpm why output.
	ErrDependencyNotFoundInWhy = zerr.New("not found in pnpm why")

	// ErrDuplicateDependency is returned when a dependency name appears twice at the same tree level.
	ErrDuplicateDependency = zerr.New("duplicate dependency")

	// ErrManifestNotFound is returned when a project has no package.json.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrMalformedManifest is returned when package.json cannot be parsed.
	ErrMalformedManifest = zerr.New("malformed manifest")

	// ErrMalformedLockfile is returned when the lockfile cannot be parsed.
	ErrMalformedLockfile = zerr.New("malformed lockfile")

	// ErrNoProjects is returned when the package manager lists no projects.
	ErrNoProjects = zerr.New("no projects listed by package manager")

	// ErrPackageManagerFailed is returned when the package manager exits with an error.
	ErrPackageManagerFailed = zerr.New("package manager command failed")

	// ErrMalformedOutput is returned when the package manager output is not valid JSON.
	ErrMalformedOutput = zerr.New("malformed package manager output")

	// ErrInvalidConfig is returned when locksmith.yaml fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")
)
