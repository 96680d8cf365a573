package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for diptych's own state.
// Nothing is ever written into the scanned folder itself.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Scan contains configuration for folder scanning and decoding.
type Scan struct {
	// StrictDecode aborts the run when a file with a supported extension
	// cannot be decoded. When false the file is skipped with a warning.
	StrictDecode bool `toml:"strict_decode"`
}

// Matcher contains configuration for fingerprint comparison.
type Matcher struct {
	Algorithm string `toml:"algorithm"`
	Threshold int    `toml:"threshold"`
}

// ExifTool contains configuration for the exiftool subprocess.
type ExifTool struct {
	Binary         string `toml:"binary"`
	Charset        string `toml:"charset"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// FingerprintCache contains configuration for the sqlite fingerprint cache.
type FingerprintCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: <cache_dir>/fingerprints.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for diptych.
//
// Configuration sections by subsystem:
//   - Paths: log and cache directories
//   - Scan: decode strictness for scanned files
//   - Matcher: hash algorithm and distance threshold
//   - ExifTool: binary, filename charset, and subprocess timeout
//   - FingerprintCache: optional sqlite cache of computed hashes
//   - Logging: log format and level
type Config struct {
	Paths            Paths            `toml:"paths"`
	Scan             Scan             `toml:"scan"`
	Matcher          Matcher          `toml:"matcher"`
	ExifTool         ExifTool         `toml:"exiftool"`
	FingerprintCache FingerprintCache `toml:"fingerprint_cache"`
	Logging          Logging          `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/diptych/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("diptych.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories diptych writes to. The cache
// directory is only created when the fingerprint cache is enabled.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if c.FingerprintCache.Enabled {
		dir := filepath.Dir(c.FingerprintCachePath())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExifToolBinary returns the exiftool executable name or path.
func (c *Config) ExifToolBinary() string {
	return c.ExifTool.Binary
}

// ExifToolTimeout returns the subprocess timeout, zero meaning no timeout.
func (c *Config) ExifToolTimeout() time.Duration {
	return time.Duration(c.ExifTool.TimeoutSeconds) * time.Second
}

// FingerprintCachePath returns the sqlite cache location, falling back to the
// cache directory default when unset.
func (c *Config) FingerprintCachePath() string {
	if strings.TrimSpace(c.FingerprintCache.Path) != "" {
		return c.FingerprintCache.Path
	}
	return filepath.Join(c.Paths.CacheDir, "fingerprints.db")
}

// LockPath returns the location of the run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "diptych.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "diptych")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/diptych"
	}
	return filepath.Join(home, ".cache", "diptych")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
