package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "FRAMEPAINT_CONFIG"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time or from the command line
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration. A missing file yields defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if p == "" {
			continue
		}
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// candidates lists config locations in priority order.
func (l *Loader) candidates() []string {
	paths := []string{l.OverridePath, os.Getenv(EnvPath)}

	// Local run directory (dev mode)
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".framepaintrc"))
		}
	}

	// XDG config path, then the fallback name
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "framepaint")
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "framepaint.rc"))
	}
	return paths
}
