package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Geocoder    GeocoderConfig `toml:"geocoder"`
	Overpass    OverpassConfig `toml:"overpass"`
	Search      SearchConfig   `toml:"search"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`   // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                        // Time format for logs (default: "15:04:05")
	Dir        string   `toml:"dir"`                                                // Log directory for file output (default: next to executable)
}

// GeocoderConfig contains Nominatim configuration
type GeocoderConfig struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	UserAgent      string        `toml:"user_agent" validate:"required"` // Nominatim usage policy requires an identifying agent
	Email          string        `toml:"email" validate:"omitempty,email"`
	Language       string        `toml:"language"`       // accept-language for results
	CountryCodes   string        `toml:"country_codes"`  // Optional comma-separated ISO 3166-1 alpha-2 filter
	RequestTimeout time.Duration `toml:"request_timeout" validate:"gt=0"`
	RateLimit      time.Duration `toml:"rate_limit" validate:"gte=0"` // Minimum time between requests
}

// OverpassConfig contains Overpass API configuration
type OverpassConfig struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	UserAgent      string        `toml:"user_agent" validate:"required"`
	QueryTimeout   int           `toml:"query_timeout" validate:"gt=0"` // Server-side [timeout:N] in seconds
	RequestTimeout time.Duration `toml:"request_timeout" validate:"gt=0"`
	RateLimit      time.Duration `toml:"rate_limit" validate:"gte=0"`
}

// SearchConfig contains settings for the address -> pharmacies pipeline
type SearchConfig struct {
	Timeout time.Duration `toml:"timeout" validate:"gt=0"` // Upper bound for one whole search (resolve + query)
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Geocoder: GeocoderConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			UserAgent:      "apteka/" + GetVersion(),
			Language:       "pl",
			RequestTimeout: 10 * time.Second,
			RateLimit:      1 * time.Second, // Nominatim allows one request per second
		},
		Overpass: OverpassConfig{
			BaseURL:        "https://overpass-api.de/api/interpreter",
			UserAgent:      "apteka/" + GetVersion(),
			QueryTimeout:   25,
			RequestTimeout: 30 * time.Second,
			RateLimit:      1 * time.Second,
		},
		Search: SearchConfig{
			Timeout: 45 * time.Second,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("APTEKA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("APTEKA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("APTEKA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("APTEKA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("APTEKA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if dir := os.Getenv("APTEKA_LOG_DIR"); dir != "" {
		config.Logging.Dir = dir
	}

	// Geocoder configuration
	if baseURL := os.Getenv("APTEKA_GEOCODER_BASE_URL"); baseURL != "" {
		config.Geocoder.BaseURL = baseURL
	}
	if userAgent := os.Getenv("APTEKA_GEOCODER_USER_AGENT"); userAgent != "" {
		config.Geocoder.UserAgent = userAgent
	}
	if email := os.Getenv("APTEKA_GEOCODER_EMAIL"); email != "" {
		config.Geocoder.Email = email
	}
	if language := os.Getenv("APTEKA_GEOCODER_LANGUAGE"); language != "" {
		config.Geocoder.Language = language
	}
	if countryCodes := os.Getenv("APTEKA_GEOCODER_COUNTRY_CODES"); countryCodes != "" {
		config.Geocoder.CountryCodes = countryCodes
	}
	if timeout := os.Getenv("APTEKA_GEOCODER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Geocoder.RequestTimeout = d
		}
	}
	if rateLimit := os.Getenv("APTEKA_GEOCODER_RATE_LIMIT"); rateLimit != "" {
		if d, err := time.ParseDuration(rateLimit); err == nil {
			config.Geocoder.RateLimit = d
		}
	}

	// Overpass configuration
	if baseURL := os.Getenv("APTEKA_OVERPASS_BASE_URL"); baseURL != "" {
		config.Overpass.BaseURL = baseURL
	}
	if userAgent := os.Getenv("APTEKA_OVERPASS_USER_AGENT"); userAgent != "" {
		config.Overpass.UserAgent = userAgent
	}
	if timeout := os.Getenv("APTEKA_OVERPASS_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Overpass.RequestTimeout = d
		}
	}
	if rateLimit := os.Getenv("APTEKA_OVERPASS_RATE_LIMIT"); rateLimit != "" {
		if d, err := time.ParseDuration(rateLimit); err == nil {
			config.Overpass.RateLimit = d
		}
	}
	if queryTimeout := os.Getenv("APTEKA_OVERPASS_QUERY_TIMEOUT"); queryTimeout != "" {
		if seconds, err := strconv.Atoi(queryTimeout); err == nil {
			config.Overpass.QueryTimeout = seconds
		}
	}

	// Search configuration
	if timeout := os.Getenv("APTEKA_SEARCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Search.Timeout = d
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration using its validate struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
