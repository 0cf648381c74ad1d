package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Source configuration for the study catalog
	Source SourceConfig `mapstructure:"source"`

	// Cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Summarizer configuration
	Summarizer SummarizerConfig `mapstructure:"summarizer"`

	// Enrichment worker pool configuration
	Enrich EnrichConfig `mapstructure:"enrich"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// SourceConfig holds configuration for the study record source
type SourceConfig struct {
	// Driver selects the backing catalog: genelab or local
	Driver    string `mapstructure:"driver"`
	SearchURL string `mapstructure:"search_url"`
	StudyURL  string `mapstructure:"study_url"`
	Term      string `mapstructure:"term"`
	Limit     int    `mapstructure:"limit"`
	Timeout   int    `mapstructure:"timeout"` // in seconds
}

// CacheConfig holds configuration for the study record cache
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
	TTL      int    `mapstructure:"ttl"` // in seconds
}

// SummarizerConfig holds configuration for study summarization
type SummarizerConfig struct {
	Provider    string  `mapstructure:"provider"` // openai, static
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	MaxRetries  int     `mapstructure:"max_retries"`
}

// EnrichConfig holds configuration for the enrichment worker pool
type EnrichConfig struct {
	Workers int `mapstructure:"workers"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.mode", "debug")

	// Source defaults
	viper.SetDefault("source.driver", "genelab")
	viper.SetDefault("source.search_url", "https://genelab-data.ndc.nasa.gov/genelab/data/search/studies")
	viper.SetDefault("source.study_url", "https://genelab-data.ndc.nasa.gov/genelab/data/study")
	viper.SetDefault("source.term", "spaceflight OR microgravity OR space OR ISS")
	viper.SetDefault("source.limit", 20)
	viper.SetDefault("source.timeout", 15)

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.in_memory", false)
	viper.SetDefault("cache.ttl", 3600)
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("cache.path", fmt.Sprintf("%s/.nullspace/cache", home))
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.nullspace/telemetry", home))
	}

	// Summarizer defaults
	viper.SetDefault("summarizer.provider", "static")
	viper.SetDefault("summarizer.model", "gpt-4o-mini")
	viper.SetDefault("summarizer.temperature", 0.3)
	viper.SetDefault("summarizer.max_tokens", 256)
	viper.SetDefault("summarizer.max_retries", 3)

	// Enrichment defaults
	viper.SetDefault("enrich.workers", 8)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Summarizer.APIKey = apiKey
		if config.Summarizer.Provider == "static" {
			config.Summarizer.Provider = "openai"
		}
	}

	// Source settings
	if url := os.Getenv("GENELAB_SEARCH_URL"); url != "" {
		config.Source.SearchURL = url
	}
	if url := os.Getenv("GENELAB_STUDY_URL"); url != "" {
		config.Source.StudyURL = url
	}
	if driver := os.Getenv("SOURCE_DRIVER"); driver != "" {
		config.Source.Driver = driver
	}

	// Cache settings
	if path := os.Getenv("CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			config.Server.Port = parsed
		}
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
