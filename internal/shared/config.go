package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Host     HostConfig     `toml:"host"`
	Database DatabaseConfig `toml:"database"`
	Blobs    BlobConfig     `toml:"blobs"`
	Server   ServerConfig   `toml:"server"`
	Email    EmailConfig    `toml:"email"`
}

// HostConfig contains media host API settings.
//
// SessionToken is the pre-authorized session for the host account that owns
// the collections. Token acquisition and refresh happen outside this service;
// the token is passed explicitly to the host client rather than held in
// process-global state.
type HostConfig struct {
	BaseURL      string  `toml:"base_url"`
	SessionToken string  `toml:"session_token"`
	RateLimit    float64 `toml:"rate_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// BlobConfig contains transient local asset storage settings.
type BlobConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig contains HTTP task worker settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// EmailConfig contains outbound notification settings.
//
// ModerationEmail mirrors the admin toggle for per-moderation-action mail;
// completion mail for new submissions is always attempted when a notify
// address is present.
type EmailConfig struct {
	SMTPAddr        string `toml:"smtp_addr"`
	From            string `toml:"from"`
	ModerationEmail bool   `toml:"moderation_email"`
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
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
