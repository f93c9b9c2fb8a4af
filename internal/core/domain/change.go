package domain

// Change records one rewritten specifier.
type Change struct {
	// Project is the manifest path or lockfile importer the change belongs to.
	Project string
	Section Section
	Name    string
	From    string
	To      string

	// OutOfRange is set when From is a valid range that To does not satisfy.
	OutOfRange bool
}
