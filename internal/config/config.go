// Package config handles loading and validating the pen-morse configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the pen-morse service.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Export     ExportConfig     `mapstructure:"export"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport.
type TransportsConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	GRPC GRPCConfig `mapstructure:"grpc"`
}

// HTTPConfig configures the web page, JSON API and WebSocket transport.
type HTTPConfig struct {
	Enabled      bool  `mapstructure:"enabled"`
	Port         int   `mapstructure:"port"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// ExportConfig bounds WAV rendering.
type ExportConfig struct {
	// MaxDuration is the longest playback a single export may render.
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

// MetricsConfig toggles the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./pen-morse.yaml, ./configs/pen-morse.yaml, /etc/pen-morse/pen-morse.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.http.max_body_bytes", 1<<20)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("export.max_duration", 2*time.Minute)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pen-morse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/pen-morse")
	}

	// Environment variables: PENMORSE_SERVER_HEALTH_PORT, PENMORSE_TRANSPORTS_GRPC_ENABLED, etc.
	v.SetEnvPrefix("PENMORSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration that cannot be served.
func (c *Config) Validate() error {
	var errs []error
	if !c.Transports.HTTP.Enabled && !c.Transports.GRPC.Enabled {
		errs = append(errs, errors.New("no transports enabled; enable http or grpc"))
	}
	checkPort := func(name string, port int) {
		if port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s: port %d out of range", name, port))
		}
	}
	checkPort("server.health_port", c.Server.HealthPort)
	if c.Transports.HTTP.Enabled {
		checkPort("transports.http.port", c.Transports.HTTP.Port)
		if c.Transports.HTTP.MaxBodyBytes <= 0 {
			errs = append(errs, errors.New("transports.http.max_body_bytes must be positive"))
		}
	}
	if c.Transports.GRPC.Enabled {
		checkPort("transports.grpc.port", c.Transports.GRPC.Port)
	}
	if c.Export.MaxDuration <= 0 {
		errs = append(errs, errors.New("export.max_duration must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseLevel maps a config level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig, w io.Writer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
