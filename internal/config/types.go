package config

import (
	"path/filepath"
	"time"
)

// ProviderType identifies an LLM provider for the fallback intent
// classifier. An empty value disables the fallback entirely; routing then
// relies on the deterministic rules alone.
type ProviderType string

const (
	ProviderNone   ProviderType = ""
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level skyroute configuration, corresponding to
// .skyroute.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	DataDir    string `yaml:"data_dir" koanf:"data_dir"`
	MinFlights int    `yaml:"min_flights" koanf:"min_flights"`
	Port       int    `yaml:"port" koanf:"port"`

	AdapterTimeoutSecs  int `yaml:"adapter_timeout_secs" koanf:"adapter_timeout_secs"`
	FallbackTimeoutSecs int `yaml:"fallback_timeout_secs" koanf:"fallback_timeout_secs"`

	AviationStackURL string `yaml:"aviationstack_url" koanf:"aviationstack_url"`
}

// DBPath returns the location of the flight-history database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "flights.db")
}

// AdapterTimeout bounds each backend call within a turn.
func (c *Config) AdapterTimeout() time.Duration {
	return time.Duration(c.AdapterTimeoutSecs) * time.Second
}

// FallbackTimeout bounds a single fallback classification call.
func (c *Config) FallbackTimeout() time.Duration {
	return time.Duration(c.FallbackTimeoutSecs) * time.Second
}
