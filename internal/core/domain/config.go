package domain

const (
	// DefaultManifestName is the manifest file name inside each project.
	DefaultManifestName = "package.json"
	// DefaultLockfileName is the lockfile name inside the workspace root.
	DefaultLockfileName = "pnpm-lock.yaml"
	// DefaultConfigName is the optional configuration file inside the workspace root.
	DefaultConfigName = "locksmith.yaml"
)

// Config holds the settings read from locksmith.yaml.
type Config struct {
	Manifest       string `yaml:"manifest" validate:"required"`
	Lockfile       string `yaml:"lockfile" validate:"required"`
	Depth          int    `yaml:"depth" validate:"gte=0"`
	WhyConcurrency int    `yaml:"whyConcurrency" validate:"gte=1,lte=16"`
}

// DefaultConfig returns the configuration used when no locksmith.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Manifest:       DefaultManifestName,
		Lockfile:       DefaultLockfileName,
		Depth:          0,
		WhyConcurrency: 1,
	}
}
