// Package config handles application configuration
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focusquest/internal/task"
)

//go:embed config.sample.yaml
var sampleConfig string

// GetSampleConfig returns the embedded sample configuration content
func GetSampleConfig() string {
	return sampleConfig
}

// TimerConfig holds the default session durations in minutes.
type TimerConfig struct {
	Work       int `yaml:"work"`
	ShortBreak int `yaml:"short_break"`
	LongBreak  int `yaml:"long_break"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// HistoryConfig controls the local completion log.
type HistoryConfig struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"` // 0 keeps everything
}

// Config represents the application configuration
type Config struct {
	Backend       string              `yaml:"backend"`     // "native" or "sandbox"
	SandboxDir    string              `yaml:"sandbox_dir"` // root granted to the sandbox backend
	DataDir       string              `yaml:"data_dir"`    // local cache location
	Timer         TimerConfig         `yaml:"timer"`
	Logging       LoggingConfig       `yaml:"logging"`
	Notifications NotificationsConfig `yaml:"notifications"`
	History       HistoryConfig       `yaml:"history"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	timer := task.DefaultTimerSettings()
	return &Config{
		Backend: "native",
		Timer: TimerConfig{
			Work:       timer.Work,
			ShortBreak: timer.ShortBreak,
			LongBreak:  timer.LongBreak,
		},
		History: HistoryConfig{Enabled: true},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "focusquest", "config.yaml"), nil
}

// Load reads the config at path, falling back to defaults when the file
// does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CachePath resolves the cache database location, honoring DataDir when
// set and falling back to the OS data dir.
func (c *Config) CachePath() (string, error) {
	dir := c.DataDir
	if dir == "" {
		base, err := dataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "focusquest")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "focusquest.db"), nil
}

// TimerSettings converts the config durations, dropping non-positive
// values in favor of the defaults.
func (c *Config) TimerSettings() task.TimerSettings {
	settings := task.DefaultTimerSettings()
	if c.Timer.Work > 0 {
		settings.Work = c.Timer.Work
	}
	if c.Timer.ShortBreak > 0 {
		settings.ShortBreak = c.Timer.ShortBreak
	}
	if c.Timer.LongBreak > 0 {
		settings.LongBreak = c.Timer.LongBreak
	}
	return settings
}

func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}
