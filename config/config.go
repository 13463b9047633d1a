// Package config loads backend configuration from the environment.
package config

import (
	"os"
	"time"
)

// Config carries all tunables for the demo backend.
type Config struct {
	// HTTP server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Model selection
	ModelProvider string // "anthropic", "openai" or "mock"
	ModelName     string

	// Weather lookup
	WeatherTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads configuration from the environment applying defaults.
func Load() Config {
	return Config{
		Port:         env("PORT", "8000"),
		ReadTimeout:  envDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout: envDuration("HTTP_WRITE_TIMEOUT", 5*time.Minute), // streaming responses outlive short write windows
		IdleTimeout:  envDuration("HTTP_IDLE_TIMEOUT", 75*time.Second),

		ModelProvider: env("MODEL_PROVIDER", "anthropic"),
		ModelName:     env("MODEL_NAME", ""),

		WeatherTimeout: envDuration("WEATHER_TIMEOUT", 15*time.Second),

		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "json"),
	}
}
