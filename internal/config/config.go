// Package config provides configuration management for the HelloWorld function host.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string
	RoutePrefix  string // Prefix of forwarded HTTP trigger routes, "api" on Azure Functions
	FunctionName string // Name the custom handler host invokes, e.g. POST /HelloWorld
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // logrus level name
	Format string // "json" or "text"
}

// RateLimitConfig holds per-IP rate limiting of the health and metrics routes
type RateLimitConfig struct {
	Limit  int64
	Period time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins []string
}

// MetricsConfig holds Prometheus configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from environment variables. A dotenv file named by
// ENV_FILE (default ".env") is read first when it exists; variables already set
// in the environment win over the file.
func Load() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			// The Functions host passes the port it expects us on.
			Port:         getEnv("FUNCTIONS_CUSTOMHANDLER_PORT", getEnv("PORT", "8080")),
			RoutePrefix:  strings.Trim(getEnv("ROUTE_PREFIX", "api"), "/"),
			FunctionName: getEnv("FUNCTION_NAME", "HelloWorld"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		RateLimit: RateLimitConfig{
			Limit:  int64(getEnvAsInt("RATE_LIMIT", 100)),
			Period: getEnvAsDuration("RATE_LIMIT_PERIOD", "1m"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}
	if c.Server.FunctionName == "" {
		return errors.New("FUNCTION_NAME must not be empty")
	}
	if c.RateLimit.Limit <= 0 {
		return errors.New("RATE_LIMIT must be positive")
	}
	if c.RateLimit.Period <= 0 {
		return errors.New("RATE_LIMIT_PERIOD must be positive")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid LOG_FORMAT %q: must be json or text", c.Logging.Format)
	}
	return nil
}

// HTTPTriggerPath returns the route the host forwards HTTP trigger requests to,
// e.g. /api/HelloWorld.
func (s *ServerConfig) HTTPTriggerPath() string {
	if s.RoutePrefix == "" {
		return "/" + s.FunctionName
	}
	return "/" + s.RoutePrefix + "/" + s.FunctionName
}

// InvokePath returns the route the host posts invocation payloads to.
func (s *ServerConfig) InvokePath() string {
	return "/" + s.FunctionName
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}

// getEnvAsList splits a comma separated environment variable
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
