// Package config provides configuration loading and structs for the zincfinder server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Catalog search protocols.
const (
	ProtocolStorefront = "storefront"
	ProtocolAdmin      = "admin"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Shop   ShopConfig   `yaml:"shop"`
	Advice AdviceConfig `yaml:"advice"`
	Reply  ReplyConfig  `yaml:"reply"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
}

// ShopConfig holds catalog platform credentials and identifiers.
// The default shop name and tokens are non-functional placeholders and must
// be supplied (via file or environment) in any real deployment.
type ShopConfig struct {
	Name            string `yaml:"name" validate:"required"`
	APIVersion      string `yaml:"api_version" validate:"required"`
	Protocol        string `yaml:"protocol" validate:"oneof=storefront admin"`
	StorefrontToken string `yaml:"storefront_token"`
	AdminToken      string `yaml:"admin_token"`
	StoreURL        string `yaml:"store_url" validate:"url"`
	PageSize        int    `yaml:"page_size" validate:"min=1"`
}

// AdviceConfig holds generative-advice settings.
type AdviceConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens" validate:"min=1"`
}

// EnabledOrDefault returns whether advice generation is on; when unset it is
// enabled exactly when an API key is configured.
func (a *AdviceConfig) EnabledOrDefault() bool {
	if a.Enabled != nil {
		return *a.Enabled
	}
	return a.APIKey != ""
}

// ReplyConfig holds response composition settings.
type ReplyConfig struct {
	Pagination     *bool `yaml:"pagination"`
	DefaultPerPage int   `yaml:"default_per_page" validate:"min=1"`
}

// PaginationOrDefault returns whether replies paginate; defaults to true when unset.
func (r *ReplyConfig) PaginationOrDefault() bool {
	if r.Pagination != nil {
		return *r.Pagination
	}
	return true
}

// Load reads and parses the config file at path, applies defaults and
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	ApplyEnv(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config built from defaults and environment overrides
// alone, for deployments that run without a config file.
func Default() (*Config, error) {
	var cfg Config
	ApplyDefaults(&cfg)
	ApplyEnv(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct-level constraints on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overrides secrets and deployment identifiers from the
// environment. Variable names match the original deployment surface.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("SHOPIFY_SHOP_NAME"); v != "" {
		cfg.Shop.Name = v
	}
	if v := os.Getenv("SHOPIFY_ACCESS_TOKEN"); v != "" {
		cfg.Shop.StorefrontToken = v
	}
	if v := os.Getenv("SHOPIFY_ADMIN_TOKEN"); v != "" {
		cfg.Shop.AdminToken = v
	}
	if v := os.Getenv("WEBSITE_URL"); v != "" {
		cfg.Shop.StoreURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Advice.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
