// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"4000"`

	// Document store (MongoDB)
	MongoURL      string `env:"MONGO_URL,required"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"carhub"`

	// Token signing
	JWTSecret string `env:"JWT_SECRET,required"`

	// Image host (S3-compatible object storage)
	S3Endpoint      string `env:"S3_ENDPOINT" envDefault:""`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket        string `env:"S3_BUCKET" envDefault:"car-images"`
	S3AccessKey     string `env:"S3_ACCESS_KEY" envDefault:""`
	S3SecretKey     string `env:"S3_SECRET_KEY" envDefault:""`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes for JSON endpoints (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Multipart upload size limit in bytes (default 32MB)
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// A .env file in the working directory is loaded first when present.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	// A missing .env file is not an error; deployed environments set
	// variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
