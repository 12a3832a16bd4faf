// Package config collects runtime tunables from defaults, .env/environment
// and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config contains runtime tunables that are not user preferences.
type Config struct {
	DebugMode        bool   `env:"KEY_OVERLAY_DEBUG"`              // verbose logging
	RecordPath       string `env:"KEY_OVERLAY_RECORD_PATH"`        // overrides the default recording location
	SliceIntervalMs  int    `env:"KEY_OVERLAY_SLICE_MS"`           // playback cancellation poll interval
	CountdownSeconds int    `env:"KEY_OVERLAY_COUNTDOWN_SECONDS"`  // delay before playback starts
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DebugMode:        false,
		RecordPath:       "",
		SliceIntervalMs:  10,
		CountdownSeconds: 3,
	}
}

// NewConfig builds the configuration from defaults, then .env/environment,
// then flags.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug", cfg.DebugMode, "enable verbose logging")
	flag.StringVar(&cfg.RecordPath, "record-path", cfg.RecordPath, "override the default recording file location")
	flag.IntVar(&cfg.SliceIntervalMs, "slice-ms", cfg.SliceIntervalMs, "playback cancellation poll interval in milliseconds")
	flag.IntVar(&cfg.CountdownSeconds, "countdown-seconds", cfg.CountdownSeconds, "countdown shown before playback starts")
	flag.Parse()

	if cfg.SliceIntervalMs <= 0 {
		cfg.SliceIntervalMs = 10
	}
	if cfg.CountdownSeconds < 0 {
		cfg.CountdownSeconds = 0
	}
	return cfg
}

// SliceInterval returns the poll interval as a duration.
func (cfg *Config) SliceInterval() time.Duration {
	return time.Duration(cfg.SliceIntervalMs) * time.Millisecond
}
