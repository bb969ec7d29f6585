package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. GIT_PARTIAL_REMOTE.
const EnvPrefix = "GIT_PARTIAL"

// Env holds the GIT_PARTIAL_* overrides. Unset variables leave the zero value.
// Field names map to variable names through split_words, so no unprefixed
// variable is ever consulted.
type Env struct {
	Remote    string
	Filter    string
	Git       string
	Abbrev    int
	LogLevel  string `split_words:"true"`
	NoInherit bool   `split_words:"true"`
}

// ReadEnv reads the overrides from the process environment.
func ReadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}
	return env, nil
}

// ApplyEnv overlays the set fields of env onto cfg.
func ApplyEnv(cfg *Config, env Env) {
	mergeString(&cfg.Remote, env.Remote)
	mergeString(&cfg.Filter, env.Filter)
	mergeString(&cfg.Git, env.Git)
	mergeString(&cfg.LogLevel, env.LogLevel)
	if env.Abbrev != 0 {
		cfg.Abbrev = env.Abbrev
	}
}
