package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/git-partial/internal/logging"
)

// Load reads and validates a git-partial.yaml settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	prefix := "config validation failed"
	if e.Path != "" {
		prefix = fmt.Sprintf("config %s validation failed", e.Path)
	}
	return fmt.Sprintf("%s:\n  - %s", prefix, strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness. Unset fields are valid.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d: only version 1 is supported", cfg.Version))
	}

	if cfg.Remote != "" && strings.ContainsAny(cfg.Remote, " \t/") {
		errs = append(errs, fmt.Sprintf("invalid remote name '%s': must not contain whitespace or '/'", cfg.Remote))
	}

	if cfg.Filter != "" && strings.ContainsAny(cfg.Filter, " \t") {
		errs = append(errs, fmt.Sprintf("invalid filter spec '%s': must not contain whitespace", cfg.Filter))
	}

	if cfg.Abbrev != 0 && (cfg.Abbrev < MinAbbrev || cfg.Abbrev > MaxAbbrev) {
		errs = append(errs, fmt.Sprintf("abbrev %d out of range: must be between %d and %d", cfg.Abbrev, MinAbbrev, MaxAbbrev))
	}

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, fmt.Sprintf("invalid log_level '%s'", cfg.LogLevel))
		}
	}

	return errs
}

// LoadOptions controls LoadLayered.
type LoadOptions struct {
	DiscoverOptions
	// NoInherit skips the system and user layers.
	NoInherit bool
}

// LoadLayered builds the effective settings: Default, then each discovered
// layer, then GIT_PARTIAL_* environment overrides. Missing system and user
// files are skipped; a missing explicit file is an error.
func LoadLayered(opts LoadOptions) (*Config, []ConfigLayerInfo, error) {
	env, err := ReadEnv()
	if err != nil {
		return nil, nil, err
	}
	if env.NoInherit {
		opts.NoInherit = true
	}

	layers := DiscoverPaths(opts.DiscoverOptions)
	configs := []*Config{Default()}
	for i := range layers {
		layer := &layers[i]
		if opts.NoInherit && layer.Level != LevelExplicit {
			continue
		}

		cfg, err := Load(layer.Path)
		if errors.Is(err, os.ErrNotExist) && layer.Level != LevelExplicit {
			continue
		}
		if err != nil {
			layer.Err = err
			return nil, layers, err
		}
		layer.Loaded = true
		configs = append(configs, cfg)
	}

	result, err := MergeAll(configs)
	if err != nil {
		return nil, layers, fmt.Errorf("merging config layers: %w", err)
	}

	ApplyEnv(result, env)
	if errs := Validate(result); len(errs) > 0 {
		return nil, layers, &ValidationError{Errors: errs}
	}
	return result, layers, nil
}
