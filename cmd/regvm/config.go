package main

import (
	"github.com/BurntSushi/toml"
)

// Config is the front end configuration, loaded from TOML and overridden by flags.
type Config struct {
	Iterations string `toml:"iterations"` // Loop count expression.
	Processors int    `toml:"processors"` // Processors running the loop.
	Verbose    bool   `toml:"verbose"`    // Trace every instruction.
	Dump       bool   `toml:"dump"`       // Print processor state at exit.
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: "1000",
		Processors: 1,
		Dump:       true,
	}
}

// LoadConfig decodes a TOML file over the defaults.
func LoadConfig(path string) (cfg Config, err error) {
	cfg = DefaultConfig()
	if len(path) == 0 {
		return
	}

	_, err = toml.DecodeFile(path, &cfg)
	return
}
