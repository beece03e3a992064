package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dpttk/bldd/internal/constants"
)

// FileConfig is the optional per-user defaults file. Every field may be
// omitted; flags always win over file values.
type FileConfig struct {
	// Format is the default report format (txt, pdf, both).
	Format string `yaml:"format,omitempty"`
	// Output is the default report base name.
	Output string `yaml:"output,omitempty"`
	// LogLevel is the default log level.
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultFileConfig returns the built-in defaults used when no file exists.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		Format:   string(FormatText),
		Output:   constants.DefaultOutputBase,
		LogLevel: "info",
	}
}

// Loader resolves and reads the defaults file.
type Loader struct {
	baseDir string
}

// NewLoader creates a config loader. The base directory is resolved in
// this order:
//  1. BLDD_CONFIG environment variable.
//  2. <user home>/.bldd.
//  3. /tmp/bldd-fallback (environments without a home dir; the file won't
//     exist there, so Load returns built-in defaults).
func NewLoader() *Loader {
	if baseDir := os.Getenv("BLDD_CONFIG"); baseDir != "" {
		return &Loader{baseDir: baseDir}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return &Loader{baseDir: filepath.Join(homeDir, constants.DefaultDir)}
	}

	return &Loader{baseDir: "/tmp/bldd-fallback"}
}

// Path returns the defaults file location.
func (l *Loader) Path() string {
	return filepath.Join(l.baseDir, constants.ConfigFile)
}

// Load reads the defaults file, returning built-in defaults when it does
// not exist. A present-but-unreadable or malformed file is a configuration
// error and fails the run.
func (l *Loader) Load() (*FileConfig, error) {
	path := l.Path()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultFileConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Format != "" {
		if _, err := ParseFormat(cfg.Format); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	return cfg, nil
}
