package config

// Config represents the git-partial.yaml settings file. Zero fields are
// unset and fall through to lower layers or to Default.
type Config struct {
	Version  int    `yaml:"version"`
	Remote   string `yaml:"remote,omitempty"`
	Filter   string `yaml:"filter,omitempty"`
	Git      string `yaml:"git,omitempty"`
	Abbrev   int    `yaml:"abbrev,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

const (
	MinAbbrev = 4
	MaxAbbrev = 40
)

// Default returns the built-in settings every layer is merged onto.
func Default() *Config {
	return &Config{
		Version:  1,
		Remote:   "origin",
		Filter:   "blob:none",
		Git:      "git",
		Abbrev:   7,
		LogLevel: "warn",
	}
}
