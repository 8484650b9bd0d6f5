// Package config provides YAML-based application configuration for the
// robots binary: tick rate, seeding, storage, logging, input and SSH server
// settings. Gameplay formulas are built into the simulation and are not
// configurable.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the application configuration.
type Config struct {
	TickRate int          `yaml:"tick_rate"` // Simulation ticks per second
	Seed     int64        `yaml:"seed"`      // 0 means time-based
	DBPath   string       `yaml:"db_path"`
	LogLevel string       `yaml:"log_level"` // debug, info, warn, error
	Input    InputConfig  `yaml:"input"`
	Server   ServerConfig `yaml:"server"`
}

// InputConfig tunes keyboard handling.
type InputConfig struct {
	// HoldTicks is how many ticks a key counts as held after its last press
	// event. Terminals report repeats, not releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// ServerConfig holds the SSH server settings.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the session idle timeout. Zero disables it.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate < 1 || c.TickRate > 120 {
		errs = append(errs, fmt.Errorf("tick_rate must be in 1..120, got %d", c.TickRate))
	}
	if c.Input.HoldTicks < 1 {
		errs = append(errs, fmt.Errorf("input.hold_ticks must be positive, got %d", c.Input.HoldTicks))
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout_minutes must not be negative, got %d", c.Server.IdleTimeoutMinutes))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
