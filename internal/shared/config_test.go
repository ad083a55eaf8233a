package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"feedsync/internal/models"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./feedsync.db" {
			t.Errorf("expected database path ./feedsync.db, got %s", config.Database.Path)
		}

		if config.Credentials.Todoist.BaseURL != "https://api.todoist.com/rest/v2" {
			t.Errorf("unexpected todoist base URL: %s", config.Credentials.Todoist.BaseURL)
		}

		if config.Sync.TimeoutSeconds != 20 {
			t.Errorf("expected timeout 20s, got %d", config.Sync.TimeoutSeconds)
		}

		if len(config.Sources) != 2 {
			t.Fatalf("expected 2 example sources, got %d", len(config.Sources))
		}

		if config.Sources[0].Kind != models.SourceMusicRelease {
			t.Errorf("expected first example source to be music-release, got %s", config.Sources[0].Kind)
		}

		if config.Sources[1].Kind != models.SourceVideoChannel {
			t.Errorf("expected second example source to be video-channel, got %s", config.Sources[1].Kind)
		}

		if len(config.Sources[1].Keywords) != 1 || config.Sources[1].Keywords[0] != "Live" {
			t.Errorf("unexpected keywords: %v", config.Sources[1].Keywords)
		}
	})

	t.Run("DefaultConfig does not pass validation", func(t *testing.T) {
		// The template ships without a token so an unconfigured install
		// aborts before any remote call instead of sending a bogus bearer.
		config := DefaultConfig()
		if config.Credentials.Todoist.APIToken != "" {
			t.Errorf("template must not carry a token, got %q", config.Credentials.Todoist.APIToken)
		}
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[credentials.todoist]
api_token = "secret"

[database]
path = ":memory:"

[[sources]]
kind = "video-channel"
id = "UC123"
name = "ChannelX"
project_id = "42"
labels = ["ChannelX"]
keywords = ["Live"]
section = true
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Todoist.APIToken != "secret" {
			t.Errorf("unexpected token: %s", config.Credentials.Todoist.APIToken)
		}

		if len(config.Sources) != 1 {
			t.Fatalf("expected 1 source, got %d", len(config.Sources))
		}

		src := config.Sources[0]
		if src.Kind != models.SourceVideoChannel || src.ID != "UC123" || !src.Section {
			t.Errorf("unexpected source: %+v", src)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("LoadConfig fails for missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Credentials: CredentialsConfig{Todoist: TodoistConfig{APIToken: "secret"}},
			Sources: []models.SourceConfig{
				{Kind: models.SourceVideoChannel, ID: "UC123", Name: "ChannelX", ProjectID: "42"},
			},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		config := base()
		config.Credentials.Todoist.APIToken = ""
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("rejects an empty source list", func(t *testing.T) {
		config := base()
		config.Sources = nil
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("rejects an invalid source", func(t *testing.T) {
		config := base()
		config.Sources[0].ProjectID = ""
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
