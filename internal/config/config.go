// Package config provides configuration management for the catalog-api service.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "CATALOG_API"

// Configuration keys. Each is also a flag name and, upper-cased behind EnvPrefix, an env var.
const (
	KeyPort              = "port"
	KeyPlayground        = "playground"
	KeyUpstreamURL       = "upstream_url"
	KeyUpstreamTimeout   = "upstream_timeout"
	KeyUpstreamRateLimit = "upstream_rate_limit"
	KeyUpstreamRateBurst = "upstream_rate_burst"
	KeyMaxParallelism    = "max_parallelism"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
)

// DefaultUpstreamURL is the catalog REST API the gateway proxies to.
const DefaultUpstreamURL = "https://odyssey-lift-off-rest-api.herokuapp.com/"

// Config holds all configuration for the catalog-api service.
type Config struct {
	// Server settings
	Port       string
	Playground bool

	// Upstream REST API settings
	UpstreamURL       string
	UpstreamTimeout   time.Duration
	UpstreamRateLimit float64
	UpstreamRateBurst int

	// GraphQL engine settings
	MaxParallelism int

	// Logging
	LogLevel  string
	LogFormat string
}

// New returns a viper instance reading CATALOG_API_* environment variables
// on top of the built-in defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyPort, "4000")
	v.SetDefault(KeyPlayground, true)
	v.SetDefault(KeyUpstreamURL, DefaultUpstreamURL)
	v.SetDefault(KeyUpstreamTimeout, time.Duration(0))
	v.SetDefault(KeyUpstreamRateLimit, 0.0)
	v.SetDefault(KeyUpstreamRateBurst, 10)
	v.SetDefault(KeyMaxParallelism, 10)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	return v
}

// RegisterFlags adds the configuration flags to fs and binds them to v.
// Flags take precedence over environment variables and the config file.
func RegisterFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyPort, "4000", "Port the HTTP server listens on.")
	fs.Bool(KeyPlayground, true, "Serve the GraphQL playground at /.")
	fs.String(KeyUpstreamURL, DefaultUpstreamURL, "Base URL of the catalog REST API.")
	fs.Duration(KeyUpstreamTimeout, 0, "Timeout for a single upstream request. Zero disables it.")
	fs.Float64(KeyUpstreamRateLimit, 0, "Upstream requests per second. Zero means unlimited.")
	fs.Int(KeyUpstreamRateBurst, 10, "Burst size for the upstream rate limiter.")
	fs.Int(KeyMaxParallelism, 10, "Maximum number of fields resolved in parallel per request.")
	fs.String(KeyLogLevel, "info", "Log level: debug, info, warn or error.")
	fs.String(KeyLogFormat, "json", "Log encoding: json or console.")
	return v.BindPFlags(fs)
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:       v.GetString(KeyPort),
		Playground: v.GetBool(KeyPlayground),

		UpstreamURL:       v.GetString(KeyUpstreamURL),
		UpstreamTimeout:   v.GetDuration(KeyUpstreamTimeout),
		UpstreamRateLimit: v.GetFloat64(KeyUpstreamRateLimit),
		UpstreamRateBurst: v.GetInt(KeyUpstreamRateBurst),

		MaxParallelism: v.GetInt(KeyMaxParallelism),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: %s must not be empty", KeyPort)
	}
	u, err := url.Parse(c.UpstreamURL)
	if err != nil {
		return fmt.Errorf("config: invalid %s: %w", KeyUpstreamURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: %s must be an absolute http(s) URL, got %q", KeyUpstreamURL, c.UpstreamURL)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyUpstreamTimeout)
	}
	if c.UpstreamRateLimit < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyUpstreamRateLimit)
	}
	if c.UpstreamRateLimit > 0 && c.UpstreamRateBurst < 1 {
		return fmt.Errorf("config: %s must be at least 1 when rate limiting is enabled", KeyUpstreamRateBurst)
	}
	if c.MaxParallelism < 1 {
		return fmt.Errorf("config: %s must be at least 1", KeyMaxParallelism)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: %s must be json or console, got %q", KeyLogFormat, c.LogFormat)
	}
	return nil
}
