// Package config loads the API server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/evarsim/core/internal/device"
	"github.com/evarsim/core/internal/resample"
)

type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	AllowedOrigin   string        `envconfig:"ALLOWED_ORIGIN" default:"*"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"10485760"`
	SplineKind      string        `envconfig:"SPLINE_KIND" default:"catmull-rom"`
	RefinePoints    int           `envconfig:"REFINE_POINTS" default:"20"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.DeviceOptions(); err != nil {
		return nil, err
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// DeviceOptions returns the tube pipeline options selected by the environment.
func (c *Config) DeviceOptions() (device.Options, error) {
	kind := resample.SplineKind(strings.ToLower(strings.TrimSpace(c.SplineKind)))
	if _, err := kind.Predictor(); err != nil {
		return device.Options{}, fmt.Errorf("SPLINE_KIND: %w", err)
	}
	if c.RefinePoints < 2 {
		return device.Options{}, fmt.Errorf("REFINE_POINTS: need at least 2, got %d", c.RefinePoints)
	}
	return device.Options{Spline: kind, RefineCount: c.RefinePoints}, nil
}
