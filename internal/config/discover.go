package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const FileName = "git-partial.yaml"
const configDirName = "git-partial"

// ConfigLevel represents the precedence level of a configuration file.
type ConfigLevel string

const (
	LevelSystem   ConfigLevel = "system"
	LevelUser     ConfigLevel = "user"
	LevelExplicit ConfigLevel = "explicit"
)

// ConfigLayerInfo describes a discovered config file and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls how config paths are discovered.
type DiscoverOptions struct {
	// ExplicitPath is a config file named on the command line. Optional.
	ExplicitPath string

	// SystemConfigPath overrides the default system config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	SystemConfigPath string

	// UserConfigPath overrides the default user config path.
	// Empty means use the XDG default. Set to a nonexistent path to skip.
	UserConfigPath string
}

// DiscoverPaths returns the ordered list of config file paths to check,
// from lowest precedence (system) to highest (explicit).
// Paths are deduplicated by resolved absolute path. An explicit path that
// repeats an earlier layer replaces it, so it is still required to exist.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	var layers []ConfigLayerInfo
	seen := make(map[string]int)

	addLayer := func(level ConfigLevel, path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if i, ok := seen[abs]; ok {
			if level != LevelExplicit {
				return
			}
			layers = append(layers[:i], layers[i+1:]...)
			for p, j := range seen {
				if j > i {
					seen[p] = j - 1
				}
			}
		}
		seen[abs] = len(layers)
		layers = append(layers, ConfigLayerInfo{
			Path:  path,
			Level: level,
		})
	}

	sysPath := opts.SystemConfigPath
	if sysPath == "" {
		sysPath = defaultSystemConfigPath()
	}
	addLayer(LevelSystem, sysPath)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = DefaultUserConfigPath()
	}
	addLayer(LevelUser, userPath)

	addLayer(LevelExplicit, opts.ExplicitPath)

	return layers
}

// defaultSystemConfigPath returns the platform-standard system config path.
func defaultSystemConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, FileName)
	default: // linux, darwin, etc.
		return filepath.Join("/etc", configDirName, FileName)
	}
}

// DefaultUserConfigPath returns the user config path under the XDG config
// home. init-config writes here when no path is given.
func DefaultUserConfigPath() string {
	if xdg.ConfigHome == "" {
		return ""
	}
	return filepath.Join(xdg.ConfigHome, configDirName, FileName)
}
