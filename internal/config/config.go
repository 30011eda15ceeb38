package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultBaseURL is the public Dreamster API.
const DefaultBaseURL = "https://api.dreamster.io/v1"

type Config struct {
	// Dreamster REST API
	API APIConfig `koanf:"api"`

	// Diagnostics
	Log LogConfig `koanf:"log"`

	// Player controls
	Playback PlaybackConfig `koanf:"playback"`

	// Desktop media keys (linux only)
	MPRIS *bool `koanf:"mpris"` // default: true

	// Record a share event whenever a track is opened
	Share *bool `koanf:"share"` // default: true

	// Desktop notification when a preview ends (linux only)
	Notifications *bool `koanf:"notifications"` // default: true
}

// APIConfig holds the Dreamster API settings.
type APIConfig struct {
	BaseURL        string  `koanf:"base_url"`        // default: DefaultBaseURL
	Token          string  `koanf:"token"`           // bearer token; empty means signed out
	TimeoutSeconds int     `koanf:"timeout_seconds"` // per request (default: 15)
	RatePerSecond  float64 `koanf:"rate_per_second"` // client-side limit (default: 5)
	Retries        int     `koanf:"retries"`         // on 5xx/network errors (default: 2, -1 disables)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/dreamster/dreamster.log
}

// PlaybackConfig holds player control settings.
type PlaybackConfig struct {
	SeekStepSeconds int     `koanf:"seek_step_seconds"` // default: 10
	VolumeStep      float64 `koanf:"volume_step"`       // default: 0.05
}

// Load reads the layered config files. When path is set, only that file is
// read and it must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		// Try config files in order of priority (last wins)
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load config %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize API URL (remove trailing slash)
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/dreamster/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dreamster", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAPIConfig returns the API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	} else if cfg.Retries == 0 {
		cfg.Retries = 2
	}

	return cfg
}

// Timeout returns the per-request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.SeekStepSeconds <= 0 {
		cfg.SeekStepSeconds = 10
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 1 {
		cfg.VolumeStep = 0.05
	}

	return cfg
}

// SeekStep returns the seek increment.
func (p PlaybackConfig) SeekStep() time.Duration {
	return time.Duration(p.SeekStepSeconds) * time.Second
}

// LogLevel returns the configured level name, "info" when unset.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return strings.ToLower(c.Log.Level)
}

// MPRISEnabled reports whether desktop media keys are enabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// NotificationsEnabled reports whether desktop notifications are sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// ShareEnabled reports whether opening a track records a share event.
func (c *Config) ShareEnabled() bool {
	return c.Share == nil || *c.Share
}
