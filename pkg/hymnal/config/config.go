// Package config loads, normalizes, and validates hymnal configuration.
//
// Settings come from a TOML file (by default ~/.config/hymnal/config.toml,
// falling back to ./hymnal.toml) layered over repository defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/source"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/store"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths locates the data directory and bundled spreadsheets.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	BasePath  string `toml:"base_path"`
	HymnsFile string `toml:"hymns_file"`
	BibleFile string `toml:"bible_file"`
}

// Store selects the persistence backend.
type Store struct {
	Backend string `toml:"backend"`
	// Path is the database file (sqlite) or directory (file). Empty means a
	// default inside DataDir.
	Path string `toml:"path"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Store   Store   `toml:"store"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   "~/.local/share/hymnal",
			HymnsFile: source.DefaultHymnsFile,
			BibleFile: source.DefaultBibleFile,
		},
		Store: Store{
			Backend: store.BackendSQLite,
		},
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatAuto,
		},
	}
}

// SampleConfig returns a commented example configuration file.
func SampleConfig() string {
	return sampleConfig
}

// ErrConfigExists indicates WriteSample found a file already in place.
var ErrConfigExists = errors.New("config file already exists")

// WriteSample writes the sample configuration to path, creating parent
// directories. An existing file is kept unless overwrite is set.
func WriteSample(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/hymnal/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved path and whether that file existed.
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
		decoder.DisallowUnknownFields()
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

// StorePath returns the backend location, defaulting inside DataDir.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Backend {
	case store.BackendFile:
		return filepath.Join(c.Paths.DataDir, "library")
	default:
		return filepath.Join(c.Paths.DataDir, "library.db")
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendSQLite, store.BackendFile, store.BackendMemory:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case logging.FormatAuto, logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if strings.TrimSpace(c.Paths.HymnsFile) == "" || strings.TrimSpace(c.Paths.BibleFile) == "" {
		return errors.New("paths: hymns_file and bible_file must not be empty")
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = ExpandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return err
	}
	base := strings.TrimSpace(c.Paths.BasePath)
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		if base, err = ExpandPath(base); err != nil {
			return err
		}
	}
	c.Paths.BasePath = base
	if c.Store.Path, err = ExpandPath(strings.TrimSpace(c.Store.Path)); err != nil {
		return err
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = logging.FormatAuto
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isConfigFile(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, exists, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("hymnal.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{defaultPath, projectPath} {
		if ok, _ := isConfigFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

// isConfigFile reports whether path names an existing regular file.
func isConfigFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// ExpandPath resolves a leading ~ and returns an absolute path. Empty stays
// empty.
func ExpandPath(pathValue string) (string, error) {
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
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
