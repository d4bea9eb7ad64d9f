package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Nomadcxx/nfosink/internal/plex"
)

// Config holds all nfosink configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Library LibraryConfig `toml:"library"`
	Output  OutputConfig  `toml:"output"`
}

// ServerConfig holds the media server connection settings
type ServerConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// LibraryConfig selects the library to sync and where its files live
// on this machine
type LibraryConfig struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"` // movie or tv
	RootPath string `toml:"root_path"`
}

// OutputConfig holds marker-writing behavior
type OutputConfig struct {
	DryRun bool `toml:"dry_run"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:32400",
		},
		Library: LibraryConfig{
			Name: "Movies",
			Type: string(plex.LibraryMovie),
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "nfosink", "config.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// Load reads the config file, creating it with defaults if it doesn't exist
func Load() (*Config, error) {
	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFile(configFile)
}

// LoadFile reads a config from an explicit path
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(configFile)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is complete enough to run a sync
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is not configured")
	}
	if c.Server.Token == "" {
		return fmt.Errorf("server token is not configured")
	}
	if c.Library.Name == "" {
		return fmt.Errorf("library name is not configured")
	}

	if !plex.LibraryType(c.Library.Type).Valid() {
		return fmt.Errorf("invalid library type: %s (must be %s or %s)",
			c.Library.Type, plex.LibraryMovie, plex.LibraryTV)
	}

	if c.Library.RootPath == "" {
		return fmt.Errorf("library root path is not configured")
	}
	info, err := os.Stat(c.Library.RootPath)
	if err != nil {
		return fmt.Errorf("library root path %s: %w", c.Library.RootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library root path %s is not a directory", c.Library.RootPath)
	}

	return nil
}
