package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported local-storage drivers.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverCgo     = "sqlite3" // github.com/mattn/go-sqlite3
)

// Config holds all daydream configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Storage   StorageConfig   `yaml:"storage"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Logging   LoggingConfig   `yaml:"logging"`
	UI        UIConfig        `yaml:"ui"`
	Audio     AudioConfig     `yaml:"audio"`
}

// StorageConfig selects the local-storage backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, sqlite3
	Path   string `yaml:"path"`   // relative paths resolve against the workspace
}

// NarrativeConfig holds the tunable timings of the horror script.
type NarrativeConfig struct {
	SecurityDelay  string `yaml:"security_delay"`  // start timer -> security message
	SpamTick       string `yaml:"spam_tick"`       // corruption wave tick
	JumpscareDelay string `yaml:"jumpscare_delay"` // notice 3 open -> overlay
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme     string `yaml:"theme"` // auto, dark, light
	MaxWidth  int    `yaml:"max_width"`
	AltScreen bool   `yaml:"alt_screen"`
}

// AudioConfig configures the optional jumpscare sting.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// envOverrides are parsed from the environment on every Load. Nil means unset.
type envOverrides struct {
	DBPath   *string `env:"DAYDREAM_DB"`
	DBDriver *string `env:"DAYDREAM_DB_DRIVER"`
	Debug    *bool   `env:"DAYDREAM_DEBUG"`
	DarkMode *bool   `env:"DAYDREAM_DARK_MODE"`
	Audio    *bool   `env:"DAYDREAM_AUDIO"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "daydream",
		Version: "1.0.0",
		Storage: StorageConfig{
			Driver: DriverModernc,
			Path:   ".daydream/daydream.db",
		},
		Narrative: NarrativeConfig{
			SecurityDelay:  "30s",
			SpamTick:       "8ms",
			JumpscareDelay: "5s",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
		UI: UIConfig{
			Theme:     "auto",
			MaxWidth:  100,
			AltScreen: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.6,
		},
	}
}

// DefaultPath returns the config location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".daydream", "config.yaml")
}

// Load loads configuration from a YAML file, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.DBPath != nil && *o.DBPath != "" {
		c.Storage.Path = *o.DBPath
	}
	if o.DBDriver != nil && *o.DBDriver != "" {
		c.Storage.Driver = *o.DBDriver
	}
	if o.Debug != nil {
		c.Logging.DebugMode = *o.Debug
		if *o.Debug {
			c.Logging.Level = "debug"
		}
	}
	if o.DarkMode != nil {
		if *o.DarkMode {
			c.UI.Theme = "dark"
		} else {
			c.UI.Theme = "light"
		}
	}
	if o.Audio != nil {
		c.Audio.Enabled = *o.Audio
	}
	return nil
}

// DBPath resolves the storage path against the workspace.
func (c *Config) DBPath(workspace string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(workspace, c.Storage.Path)
}

// GetSecurityDelay returns the security timer delay.
func (c *Config) GetSecurityDelay() time.Duration {
	return parseDuration(c.Narrative.SecurityDelay, 30*time.Second)
}

// GetSpamTick returns the corruption wave tick interval.
func (c *Config) GetSpamTick() time.Duration {
	return parseDuration(c.Narrative.SpamTick, 8*time.Millisecond)
}

// GetJumpscareDelay returns the delay between opening notice 3 and the overlay.
func (c *Config) GetJumpscareDelay() time.Duration {
	return parseDuration(c.Narrative.JumpscareDelay, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverModernc, DriverCgo:
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path required")
	}

	for name, s := range map[string]string{
		"security_delay":  c.Narrative.SecurityDelay,
		"spam_tick":       c.Narrative.SpamTick,
		"jumpscare_delay": c.Narrative.JumpscareDelay,
	} {
		if s == "" {
			continue
		}
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("invalid narrative.%s: %w", name, err)
		}
	}

	switch c.UI.Theme {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("invalid ui theme: %q", c.UI.Theme)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0,1], got %v", c.Audio.Volume)
	}

	return nil
}
