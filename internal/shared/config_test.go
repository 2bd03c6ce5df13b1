package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "mediadirect.db" {
			t.Errorf("expected database path mediadirect.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8081 {
			t.Errorf("expected server port 8081, got %d", config.Server.Port)
		}

		if config.Host.BaseURL != "https://photos.example.com/api" {
			t.Errorf("expected host base URL https://photos.example.com/api, got %s", config.Host.BaseURL)
		}

		if config.Email.ModerationEmail {
			t.Error("expected moderation email to default to off")
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

		testConfig := `[host]
base_url = "https://host.test/api"
session_token = "token-123"
rate_limit = 2.5

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[blobs]
dir = "/var/blobs"

[server]
host = "0.0.0.0"
port = 9090

[email]
smtp_addr = "mail.test:587"
from = "direct@host.test"
moderation_email = true
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Host.SessionToken != "token-123" {
			t.Errorf("expected session token token-123, got %s", config.Host.SessionToken)
		}

		if !config.Email.ModerationEmail {
			t.Error("expected moderation email to be enabled")
		}

		if config.Host.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Host.RateLimit)
		}
	})
}
