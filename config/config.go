package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Auth     AuthConfig     `yaml:"auth"`
	Rooms    RoomsConfig    `yaml:"rooms"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// ProviderConfig holds the calendar provider (Microsoft Graph) settings.
type ProviderConfig struct {
	Tenant     string   `yaml:"tenant"`
	ClientID   string   `yaml:"client_id"`
	Scopes     []string `yaml:"scopes"`
	BaseURL    string   `yaml:"base_url"`
	PageSize   int      `yaml:"page_size"`
	Timezone   string   `yaml:"timezone"`
	MailDomain string   `yaml:"mail_domain"`
}

// AuthConfig holds the OAuth token cache settings.
type AuthConfig struct {
	TokenFile string `yaml:"token_file"`
}

// RoomsConfig holds the room directory cache settings.
type RoomsConfig struct {
	TTLHours int           `yaml:"ttl_hours"`
	TTL      time.Duration `yaml:"-"` // Ignored by YAML parser
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Provider.Tenant == "" || cfg.Provider.ClientID == "" {
		return nil, fmt.Errorf("provider.tenant and provider.client_id must be configured")
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if len(cfg.Provider.Scopes) == 0 {
		cfg.Provider.Scopes = []string{
			"https://graph.microsoft.com/Calendars.Read",
			"https://graph.microsoft.com/Calendars.Read.Shared",
			"https://graph.microsoft.com/Place.Read.All",
			"https://graph.microsoft.com/User.ReadBasic.All",
			"offline_access",
		}
	}
	if cfg.Provider.PageSize <= 0 {
		cfg.Provider.PageSize = 100
	}
	if cfg.Provider.Timezone == "" {
		cfg.Provider.Timezone = "Europe/Amsterdam"
	}

	if cfg.Auth.TokenFile == "" {
		cfg.Auth.TokenFile = "tokens.json"
	}

	if cfg.Rooms.TTLHours <= 0 {
		cfg.Rooms.TTLHours = 24
	}
	cfg.Rooms.TTL = time.Duration(cfg.Rooms.TTLHours) * time.Hour

	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Provider.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Provider.Timezone, err)
	}
	return loc, nil
}
