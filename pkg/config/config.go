package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CARDSHEET"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load("./config/settings.yaml")
	})
	return initErr
}

// load reads .env, defaults, environment overrides and the optional settings
// file into the global viper instance
func load(settingsPath string) error {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean(settingsPath)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Set overrides a config value, used for command-line flags
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	for _, key := range []string{"scryfall.timeout", "rates.timeout", "search.request_timeout"} {
		if viper.GetDuration(key) <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}

	if viper.GetFloat64("scryfall.rate_limit") < 0 {
		return fmt.Errorf("scryfall.rate_limit must not be negative")
	}

	switch viper.GetString("logging.format") {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q", viper.GetString("logging.format"))
	}

	// Auto-correct a burst that would block every request
	if viper.GetInt("scryfall.burst") <= 0 {
		viper.Set("scryfall.burst", 1)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scryfall.Timeout <= 0 {
		return fmt.Errorf("scryfall timeout must be positive")
	}
	if c.Rates.Timeout <= 0 {
		return fmt.Errorf("rates timeout must be positive")
	}
	if c.Search.RequestTimeout <= 0 {
		return fmt.Errorf("search request timeout must be positive")
	}
	if c.Scryfall.Burst <= 0 {
		c.Scryfall.Burst = 1
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 90*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Scryfall asks clients to stay under 10 requests per second
	viper.SetDefault("scryfall.search_url", "https://api.scryfall.com/cards/search")
	viper.SetDefault("scryfall.timeout", 15*time.Second)
	viper.SetDefault("scryfall.rate_limit", 8)
	viper.SetDefault("scryfall.burst", 1)
	viper.SetDefault("scryfall.user_agent", "cardsheet-api/1.0")

	// Exchange rate defaults
	viper.SetDefault("rates.url", "https://api.exchangerate-api.com/v4/latest/USD")
	viper.SetDefault("rates.target", "BRL")
	viper.SetDefault("rates.timeout", 10*time.Second)

	// Search defaults
	viper.SetDefault("search.request_timeout", 60*time.Second)
	viper.SetDefault("search.legality_formats", []string{"commander", "pioneer"})
	viper.SetDefault("search.default_fields", "name")
	viper.SetDefault("search.default_count", 150)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 2)
	viper.SetDefault("rate_limiting.burst", 5)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.file_path", "./logs/cardsheet.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 10)
	viper.SetDefault("logging.max_age", 30)
	viper.SetDefault("logging.compress", true)

	// Export defaults
	viper.SetDefault("export.sheet_name", "Cards")
	viper.SetDefault("export.filename", "cards.xlsx")
}
