package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .skyroute.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to skyroute! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Fallback classifier provider.
	providerPrompt := promptui.Select{
		Label: "LLM fallback classifier (used only when rules can't place a question)",
		Items: []string{
			"none   — rules only",
			"openai — needs OPENAI_API_KEY",
			"google — needs GOOGLE_API_KEY",
			"ollama — local, no key",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderNone, ProviderOpenAI, ProviderGoogle, ProviderOllama}
	cfg.Provider = providers[providerIdx]

	// 2. Model, when a provider was chosen.
	if cfg.Provider != ProviderNone {
		modelPrompt := promptui.Prompt{
			Label:   "Model",
			Default: DefaultModel(cfg.Provider),
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		cfg.Model = model
	}

	// 3. Data directory for the flight-history database.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for flight history",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 4. HTTP server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// Point out missing API keys before the first run, not during it.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: set %s in your environment to enable the fallback classifier.\n", envVar)
	}
	if os.Getenv(AviationStackKeyEnvVar) == "" {
		fmt.Printf("Note: set %s to enable live flight status lookups.\n", AviationStackKeyEnvVar)
	}

	configPath := ".skyroute.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
