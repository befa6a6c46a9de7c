package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	USDA      USDAConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
	Report    ReportConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "postgres"
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// USDAConfig holds USDA API configuration. An empty key disables ingredient import.
type USDAConfig struct {
	APIKey        string  `mapstructure:"api_key"`
	BaseURL       string  `mapstructure:"base_url"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
	USDA  int `mapstructure:"usda"` // requests per hour
}

// SeedConfig points at the seed files
type SeedConfig struct {
	IngredientsFile string `mapstructure:"ingredients_file"`
	DishesDir       string `mapstructure:"dishes_dir"`
	OnStart         bool   `mapstructure:"on_start"`
}

// ReportConfig holds PDF export configuration.
// FontFile is a TrueType font used for non-Latin ingredient names; empty uses the core font.
type ReportConfig struct {
	FontFile string `mapstructure:"font_file"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/menuplanner/")

	// MENUPLANNER_DATABASE_URL -> database.url
	v.SetEnvPrefix("MENUPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the environment when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key needs a default so
// AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost", "http://127.0.0.1:3000"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.min_confidence", 40.0)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "720h") // 30 days

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.usda", 1000)

	v.SetDefault("seed.ingredients_file", "data/ingredients.csv")
	v.SetDefault("seed.dishes_dir", "dishes")
	v.SetDefault("seed.on_start", false)

	v.SetDefault("report.font_file", "")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Storage.Driver {
	case "memory":
	case "postgres":
		if config.Database.URL == "" {
			return fmt.Errorf("database URL is required when storage driver is 'postgres' (set MENUPLANNER_DATABASE_URL)")
		}
	default:
		return fmt.Errorf("storage driver must be 'memory' or 'postgres', got: %s", config.Storage.Driver)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit per_ip and burst must be positive")
	}

	if config.USDA.MinConfidence < 0 || config.USDA.MinConfidence > 100 {
		return fmt.Errorf("usda min_confidence must be within [0, 100], got: %v", config.USDA.MinConfidence)
	}

	return nil
}

// ImportEnabled reports whether a USDA API key is configured
func (c *Config) ImportEnabled() bool {
	return c.USDA.APIKey != ""
}
