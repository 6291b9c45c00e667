package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
	"dongne/internal/town"
)

// FileName is the settings file name inside the config directory
const FileName = "dongne.toml"

// Config represents the application configuration
type Config struct {
	Version     int          `toml:"version"`
	CatalogPath string       `toml:"catalog_path,omitempty"`
	Towns       TownSettings `toml:"towns"`
	UI          UISettings   `toml:"ui"`
}

// TownSettings holds the confirmed neighborhood ids
type TownSettings struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ClearPolicy  string `toml:"clear_policy"`  // "disallow" or "promote"
	AlertSeconds int    `toml:"alert_seconds"` // how long the upper alert stays
	ShowNearby   bool   `toml:"show_nearby"`
}

// ClearPolicy parses UI.ClearPolicy
func (c *Config) ClearPolicy() (town.ClearPolicy, error) {
	return town.ParseClearPolicy(c.UI.ClearPolicy)
}

// SetTowns records a confirmed setting
func (c *Config) SetTowns(setting domain.TownSetting) {
	c.Towns.Primary = setting.Primary.ID
	c.Towns.Secondary = setting.Secondary.ID
}

// Validate checks values the UI relies on
func (c *Config) Validate() error {
	if _, err := c.ClearPolicy(); err != nil {
		return err
	}
	if c.UI.AlertSeconds < 0 {
		return fmt.Errorf("alert_seconds must not be negative, got %d", c.UI.AlertSeconds)
	}
	if c.Towns.Primary == "" && c.Towns.Secondary != "" {
		return errors.New("towns.secondary is set without towns.primary")
	}
	if c.Towns.Primary != "" && c.Towns.Primary == c.Towns.Secondary {
		return fmt.Errorf("towns.primary and towns.secondary are both %q", c.Towns.Primary)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the given file. An empty
// path resolves to dongne.toml under the user config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns the default settings file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dongne", FileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", cs.filePath).Msg("no config file, using defaults")
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write through a temp file so a crash never leaves half a config
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	log.Info().Str("path", path).Msg("config saved")
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UI: UISettings{
			ClearPolicy:  town.ClearDisallow.String(),
			AlertSeconds: 2,
			ShowNearby:   true,
		},
	}
}
