// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config aggregates all runtime settings.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Actuator ActuatorConfig `envPrefix:"ACTUATOR_"`
}

// AppConfig identifies the service and tunes logging.
type AppConfig struct {
	ServiceName  string `env:"SERVICE_NAME"         envDefault:"hello-service"`
	Environment  string `env:"APP_ENV"              envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"            envDefault:"info"`
	TraceProject string `env:"GOOGLE_CLOUD_PROJECT"`
}

// HTTPConfig keeps PORT unprefixed, as platforms like Cloud Run set it.
type HTTPConfig struct {
	Port              int           `env:"PORT"                     envDefault:"8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT"        envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"2s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT"       envDefault:"10s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT"        envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
	MaxBodyBytes      int64         `env:"HTTP_MAX_BODY_BYTES"      envDefault:"1048576"`
	AllowedOrigins    []string      `env:"HTTP_ALLOWED_ORIGINS"     envSeparator:","`
}

// ActuatorConfig controls the operational endpoints and the disk space check.
type ActuatorConfig struct {
	Enabled       bool   `env:"ENABLED"        envDefault:"true"`
	DiskPath      string `env:"DISK_PATH"      envDefault:"."`
	DiskThreshold uint64 `env:"DISK_THRESHOLD" envDefault:"10485760"`
}

// Addr is the listen address for the HTTP server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an optional .env file, parses the environment into Config and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.ServiceName == "" {
		return errors.New("SERVICE_NAME must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT %d out of range 1-65535", c.HTTP.Port)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive, got %d", c.HTTP.MaxBodyBytes)
	}
	if c.Actuator.Enabled && c.Actuator.DiskPath == "" {
		return errors.New("ACTUATOR_DISK_PATH must not be empty")
	}
	return nil
}
