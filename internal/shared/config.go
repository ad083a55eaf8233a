package shared

import (
	_ "embed"
	"fmt"
	"os"

	"feedsync/internal/models"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig     `toml:"credentials"`
	Database    DatabaseConfig        `toml:"database"`
	Sync        SyncConfig            `toml:"sync"`
	Sources     []models.SourceConfig `toml:"sources"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Todoist TodoistConfig `toml:"todoist"`
}

// TodoistConfig contains Todoist REST API credentials.
type TodoistConfig struct {
	APIToken string `toml:"api_token"`
	BaseURL  string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig contains tuning knobs for the synchronization run.
type SyncConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"` // Per remote call, defaults to 20
	RateLimit      float64 `toml:"rate_limit"`      // Task API requests per second, defaults to 5
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks credentials and every configured source.
//
// A missing API token or an invalid source definition aborts the run before
// any remote call is made.
func (c *Config) Validate() error {
	if c.Credentials.Todoist.APIToken == "" {
		return fmt.Errorf("%w: todoist api_token is not set", ErrMissingCredentials)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: no sources configured", ErrInvalidConfig)
	}
	for _, src := range c.Sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
