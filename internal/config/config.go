// Package config loads the settings of the propdemo host from the environment.
package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the host settings. Every field can be set through the environment
// variable named in its tag; unset variables keep the defaults.
type Config struct {
	TemplatesPath string  `config:"PROPCORE_TEMPLATES"`
	GCInterval    int     `config:"PROPCORE_GC_INTERVAL"`
	TickRate      int     `config:"PROPCORE_TICK_RATE"`
	Duration      float64 `config:"PROPCORE_DURATION"` // seconds of simulated time
	Entities      int     `config:"PROPCORE_ENTITIES"`
	LogLevel      string  `config:"LOG_LEVEL"`
	LogPretty     bool    `config:"LOG_PRETTY"`
	Profile       string  `config:"PROPCORE_PROFILE"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		GCInterval: 60,
		TickRate:   60,
		Duration:   10,
		Entities:   1000,
		LogLevel:   "info",
	}
}

// Load reads the environment on top of the defaults and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to read configuration from environment")
	}
	return cfg, cfg.Validate()
}

// Validate checks that the settings describe a runnable host.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return eris.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.Duration < 0 {
		return eris.Errorf("duration must not be negative, got %g", c.Duration)
	}
	if c.Entities < 0 {
		return eris.Errorf("entity count must not be negative, got %d", c.Entities)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("unknown profile mode %q", c.Profile)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}
