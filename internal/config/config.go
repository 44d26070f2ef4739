package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// YearConfig points at the inputs of one conference year.
type YearConfig struct {
	Year int `yaml:"year" json:"year"`
	// Schedule is the grid descriptor, a path or an http(s) URL.
	Schedule string `yaml:"schedule" json:"schedule"`
	// Sessions are session sources in override order: later entries win.
	Sessions []string `yaml:"sessions" json:"sessions"`
	// WorkshopsOnly keeps only days labelled as workshop days.
	WorkshopsOnly bool `yaml:"workshops_only,omitempty" json:"workshops_only,omitempty"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone the conference runs in (e.g. "Europe/London").
	// Used for ICS export.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// controlling how often `serve` rebuilds every year.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ImageBase prefixes speaker and header image paths.
	ImageBase string `yaml:"image_base" json:"image_base"`

	// CacheDir holds cached copies of remote sources.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// Years lists the conference years to build.
	Years []YearConfig `yaml:"years" json:"years"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Timezone:    "Europe/London",
		RefreshCron: "*/15 * * * *",
		LogLevel:    "info",
		ImageBase:   "/static/img",
		CacheDir:    "./var/source-cache",
		Years:       []YearConfig{},
		BasicAuth:   nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/London"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.ImageBase == "" {
		c.ImageBase = "/static/img"
	}
	if c.CacheDir == "" {
		c.CacheDir = "./var/source-cache"
	}
	if c.Years == nil {
		c.Years = []YearConfig{}
	}
	sort.SliceStable(c.Years, func(i, j int) bool {
		return c.Years[i].Year < c.Years[j].Year
	})
}

// Validate reports configuration that cannot produce a build.
func (c *Config) Validate() error {
	seen := make(map[int]bool, len(c.Years))
	for _, y := range c.Years {
		if y.Year <= 0 {
			return fmt.Errorf("config: invalid year %d", y.Year)
		}
		if seen[y.Year] {
			return fmt.Errorf("config: year %d listed twice", y.Year)
		}
		seen[y.Year] = true
		if y.Schedule == "" {
			return fmt.Errorf("config: year %d has no schedule", y.Year)
		}
		if len(y.Sessions) == 0 {
			return fmt.Errorf("config: year %d has no session sources", y.Year)
		}
	}
	return nil
}

// Year returns the entry for year.
func (c *Config) Year(year int) (YearConfig, bool) {
	for _, y := range c.Years {
		if y.Year == year {
			return y, true
		}
	}
	return YearConfig{}, false
}

// Latest returns the most recent configured year.
func (c *Config) Latest() (YearConfig, bool) {
	if len(c.Years) == 0 {
		return YearConfig{}, false
	}
	latest := c.Years[0]
	for _, y := range c.Years[1:] {
		if y.Year > latest.Year {
			latest = y
		}
	}
	return latest, true
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".confsched-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
