package config

// defaultModels maps each fallback provider to the model used when the
// config names none. Classification needs only a short single-label
// completion, so the cheap tier of each provider is plenty.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGoogle: "gemini-2.0-flash",
	ProviderOllama: "llama3",
}

// DefaultModel returns the default model for the given provider, or ""
// when the provider is unknown or disabled.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}

// DefaultConfig returns a Config with sensible defaults. The LLM fallback
// is disabled until a provider is configured.
func DefaultConfig() *Config {
	return &Config{
		Provider:            ProviderNone,
		DataDir:             ".skyroute",
		MinFlights:          10,
		Port:                8080,
		AdapterTimeoutSecs:  10,
		FallbackTimeoutSecs: 5,
		AviationStackURL:    "http://api.aviationstack.com/v1",
	}
}
