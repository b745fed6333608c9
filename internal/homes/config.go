package homes

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// configFile is the tunables file name inside the data directory.
const configFile = "config.yaml"

type configRecord struct {
	DefaultHomeLimit    int  `yaml:"default_home_limit"`
	MaxHomeLimit        int  `yaml:"max_home_limit"`
	WarmupSeconds       int  `yaml:"warmup_seconds"`
	PermissionOverrides bool `yaml:"permission_overrides"`
}

func defaultConfig() configRecord {
	return configRecord{
		DefaultHomeLimit:    3,
		MaxHomeLimit:        10,
		WarmupSeconds:       3,
		PermissionOverrides: true,
	}
}

func (r *configRecord) normalize() {
	if r.DefaultHomeLimit < 0 {
		r.DefaultHomeLimit = 0
	}
	if r.MaxHomeLimit < 0 {
		r.MaxHomeLimit = 0
	}
	if r.WarmupSeconds < 0 {
		r.WarmupSeconds = 0
	}
}

// Config holds the engine tunables. Readers always observe a fully-old or
// fully-new record; Reload and the setters replace fields under the write
// lock and persist immediately.
type Config struct {
	path string
	log  *zap.Logger

	mu  sync.RWMutex
	rec configRecord
}

// LoadConfig reads config.yaml from the data directory, creating it with
// defaults when absent.
func LoadConfig(dataDir string, log *zap.Logger) (*Config, error) {
	c := &Config{
		path: filepath.Join(dataDir, configFile),
		log:  log,
		rec:  defaultConfig(),
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := c.saveLocked(); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c.rec); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	c.rec.normalize()
	return c, nil
}

// Reload re-reads the backing file and replaces every field atomically.
func (c *Config) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	rec := defaultConfig()
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	rec.normalize()
	c.mu.Lock()
	c.rec = rec
	c.mu.Unlock()
	return nil
}

func (c *Config) saveLocked() error {
	data, err := yaml.Marshal(c.rec)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := writeFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// DefaultHomeLimit returns the base slot count for players without tier
// permissions.
func (c *Config) DefaultHomeLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec.DefaultHomeLimit
}

// MaxHomeLimit returns the hard cap on any player's effective limit.
func (c *Config) MaxHomeLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec.MaxHomeLimit
}

// WarmupSeconds returns the teleport warmup length; zero means instant.
func (c *Config) WarmupSeconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec.WarmupSeconds
}

// WarmupDuration returns WarmupSeconds as a duration.
func (c *Config) WarmupDuration() time.Duration {
	return time.Duration(c.WarmupSeconds()) * time.Second
}

// PermissionOverridesEnabled reports whether tier permissions may raise the
// base limit.
func (c *Config) PermissionOverridesEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec.PermissionOverrides
}

// SetDefaultHomeLimit updates the default slot count and persists.
func (c *Config) SetDefaultHomeLimit(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.DefaultHomeLimit = n
	c.rec.normalize()
	return c.saveLocked()
}

// SetMaxHomeLimit updates the hard cap and persists.
func (c *Config) SetMaxHomeLimit(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.MaxHomeLimit = n
	c.rec.normalize()
	return c.saveLocked()
}

// SetWarmupSeconds updates the warmup length and persists.
func (c *Config) SetWarmupSeconds(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.WarmupSeconds = n
	c.rec.normalize()
	return c.saveLocked()
}

// SetPermissionOverrides toggles the tier table and persists.
func (c *Config) SetPermissionOverrides(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.PermissionOverrides = enabled
	return c.saveLocked()
}
