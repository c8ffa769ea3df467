package cmd

import (
	"fmt"
	"os"

	"github.com/skyrouteai/skyroute/internal/config"
	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/llm"
	"github.com/skyrouteai/skyroute/internal/router"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `skyroute init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// backends holds the shared adapters behind every session router: the live
// status client, the flight-history store, and the optional LLM fallback.
type backends struct {
	cfg      *config.Config
	status   flightstatus.Lookup
	store    *warehouse.Store
	fallback intent.Fallback
}

// openBackends wires up everything the router needs from the config.
// Missing API keys disable the corresponding capability with a warning
// instead of failing: the assistant degrades, it doesn't refuse to start.
func openBackends(cfg *config.Config) (*backends, error) {
	b := &backends{cfg: cfg}

	store, err := warehouse.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening flight database: %w", err)
	}
	store.MinFlights = cfg.MinFlights
	b.store = store

	if key := os.Getenv(config.AviationStackKeyEnvVar); key != "" {
		b.status = flightstatus.NewAviationStackClient(key, cfg.AviationStackURL, cfg.AdapterTimeout())
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Note: %s not set, live flight status disabled\n", config.AviationStackKeyEnvVar)
	}

	if cfg.Provider != config.ProviderNone {
		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM fallback disabled: %v\n", err)
		} else {
			b.fallback = intent.NewLLMClassifier(provider, cfg.Model)
		}
	}

	return b, nil
}

// Close releases the flight-history store.
func (b *backends) Close() error {
	return b.store.Close()
}

// newRouter builds a router with fresh conversation memory over the
// shared backends. Each session gets its own.
func (b *backends) newRouter() *router.Router {
	rcfg := router.Config{
		Classifier:     intent.NewClassifier(b.fallback, b.cfg.FallbackTimeout()),
		Status:         b.status,
		MinFlights:     b.cfg.MinFlights,
		AdapterTimeout: b.cfg.AdapterTimeout(),
	}
	if b.store != nil {
		rcfg.Warehouse = b.store
	}
	return router.New(rcfg)
}
