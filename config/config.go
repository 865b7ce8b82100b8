package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Toast     ToastConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ToastConfig holds Toast POS API configuration
type ToastConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ClientID       string        `mapstructure:"client_id"`
	ClientSecret   string        `mapstructure:"client_secret"`
	RestaurantGUID string        `mapstructure:"restaurant_guid"`
	MenuGUID       string        `mapstructure:"menu_guid"`
	Environment    string        `mapstructure:"environment"` // sent as Toast-Environment header
	Timeout        time.Duration `mapstructure:"timeout"`
	TokenMargin    time.Duration `mapstructure:"token_margin"` // refresh this long before expiry
}

// CacheConfig holds menu cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Toast int `mapstructure:"toast"` // outbound requests per second
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tableorder/")

	// Environment variable settings
	v.SetEnvPrefix("TABLEORDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Toast defaults. Credentials default to empty so env overrides bind
	// during Unmarshal; validate rejects them when still unset.
	v.SetDefault("toast.base_url", "https://ws-sandbox-api.eng.toasttab.com")
	v.SetDefault("toast.client_id", "")
	v.SetDefault("toast.client_secret", "")
	v.SetDefault("toast.restaurant_guid", "")
	v.SetDefault("toast.menu_guid", "09c1b0bc-2c15-4229-bbe9-875187c451ab")
	v.SetDefault("toast.environment", "sandbox")
	v.SetDefault("toast.timeout", "15s")
	v.SetDefault("toast.token_margin", "60s")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.toast", 10)
}

// validate validates the configuration. Credential checks happen here so a
// misconfigured deployment fails at startup, before any network call.
func validate(config *Config) error {
	if config.Toast.ClientID == "" {
		return fmt.Errorf("Toast client id is required (set TABLEORDER_TOAST_CLIENT_ID)")
	}

	if config.Toast.ClientSecret == "" {
		return fmt.Errorf("Toast client secret is required (set TABLEORDER_TOAST_CLIENT_SECRET)")
	}

	if config.Toast.RestaurantGUID == "" {
		return fmt.Errorf("restaurant GUID is required (set TABLEORDER_TOAST_RESTAURANT_GUID)")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	return nil
}
