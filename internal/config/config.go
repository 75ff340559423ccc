// Package config handles configuration file loading and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Zachkp/portfolio/internal/theme"
)

// Default configuration values.
const (
	DefaultPort          = "8080"
	DefaultDuration      = "1s"
	DefaultSettleDelay   = "50ms"
	DefaultFrame         = "16ms"
	DefaultIdleTimeout   = "30m"
	DefaultSweepInterval = "1m"
	DefaultDBPath        = "portfolio.db"
	DefaultRetention     = "8760h" // 12 months
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultConfigFile    = "portfolio.toml"
)

// Config represents the portfolio configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Theme   ThemeConfig   `toml:"theme"`
	Session SessionConfig `toml:"session"`
	Store   StoreConfig   `toml:"store"`
	Admin   AdminConfig   `toml:"admin"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr    string `toml:"addr"`     // Listen address, e.g. ":8080"
	GinMode string `toml:"gin_mode"` // debug, release, test (empty = gin default)
}

// ThemeConfig holds the theme set and animation timings.
type ThemeConfig struct {
	Colors      []string `toml:"colors"`
	Duration    string   `toml:"duration"`
	SettleDelay string   `toml:"settle_delay"`
	Frame       string   `toml:"frame"`
}

// SessionConfig holds session expiry settings.
type SessionConfig struct {
	IdleTimeout   string `toml:"idle_timeout"`
	SweepInterval string `toml:"sweep_interval"`
}

// StoreConfig holds SQLite settings.
type StoreConfig struct {
	Path           string `toml:"path"`
	VisitRetention string `toml:"visit_retention"`
	TrackVisitors  bool   `toml:"track_visitors"`
}

// AdminConfig holds admin dashboard credentials.
type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":" + DefaultPort,
		},
		Theme: ThemeConfig{
			Colors:      append([]string(nil), theme.DefaultColors...),
			Duration:    DefaultDuration,
			SettleDelay: DefaultSettleDelay,
			Frame:       DefaultFrame,
		},
		Session: SessionConfig{
			IdleTimeout:   DefaultIdleTimeout,
			SweepInterval: DefaultSweepInterval,
		},
		Store: StoreConfig{
			Path:           DefaultDBPath,
			VisitRetention: DefaultRetention,
			TrackVisitors:  true,
		},
		Admin: AdminConfig{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
		},
	}
}

// LoadConfig loads configuration from path and applies environment overrides.
// If path is empty, DefaultConfigFile is tried. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables, which win over the file.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Server.GinMode = mode
	}
	if db := os.Getenv("PORTFOLIO_DB"); db != "" {
		c.Store.Path = db
	}
	if u := os.Getenv("ADMIN_USERNAME"); u != "" {
		c.Admin.Username = u
	}
	if p := os.Getenv("ADMIN_PASSWORD"); p != "" {
		c.Admin.Password = p
	}
}

// Validate checks that colors parse and that durations parse and are usable.
// Only theme.settle_delay may be zero or negative.
func (c *Config) Validate() error {
	if _, err := c.ThemeSet(); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Theme.SettleDelay); err != nil {
		return fmt.Errorf("theme.settle_delay: %w", err)
	}
	for _, f := range []struct{ name, value string }{
		{"theme.duration", c.Theme.Duration},
		{"theme.frame", c.Theme.Frame},
		{"session.idle_timeout", c.Session.IdleTimeout},
		{"session.sweep_interval", c.Session.SweepInterval},
		{"store.visit_retention", c.Store.VisitRetention},
	} {
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %s", f.name, f.value)
		}
	}
	return nil
}

// ThemeSet builds the configured theme set.
func (c *Config) ThemeSet() (theme.ThemeSet, error) {
	return theme.NewThemeSet(c.Theme.Colors...)
}

// AnimationOptions returns the controller timings.
func (c *Config) AnimationOptions() theme.Options {
	return theme.Options{
		Duration:    mustDuration(c.Theme.Duration),
		SettleDelay: mustDuration(c.Theme.SettleDelay),
	}
}

// FrameInterval returns the animation frame period.
func (c *Config) FrameInterval() time.Duration {
	return mustDuration(c.Theme.Frame)
}

// IdleTimeout returns how long an unused session lives.
func (c *Config) IdleTimeout() time.Duration {
	return mustDuration(c.Session.IdleTimeout)
}

// SweepInterval returns how often idle sessions are collected.
func (c *Config) SweepInterval() time.Duration {
	return mustDuration(c.Session.SweepInterval)
}

// VisitRetention returns how long visitor records are kept.
func (c *Config) VisitRetention() time.Duration {
	return mustDuration(c.Store.VisitRetention)
}

// UsingDefaultAdmin reports whether the built-in admin credentials are active.
func (c *Config) UsingDefaultAdmin() bool {
	return c.Admin.Username == DefaultAdminUsername && c.Admin.Password == DefaultAdminPassword
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// mustDuration parses a value already checked by Validate.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic("config: unvalidated duration " + s)
	}
	return d
}
