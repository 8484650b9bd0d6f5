package config

import (
	_ "embed"
)

//go:embed defaults/robots.yaml
var defaultRobotsYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		TickRate: 30,
		Seed:     0,
		DBPath:   "~/.robots/runs.db",
		LogLevel: "info",
		Input: InputConfig{
			HoldTicks: 4,
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKey:            "~/.robots/host_key",
			IdleTimeoutMinutes: 10,
		},
	}
}
