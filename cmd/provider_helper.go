package cmd

import (
	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/provider"
)

// resolveProvider creates an AIProvider from the current config.
func resolveProvider(conf config.Config) (provider.AIProvider, error) {
	// Override provider name from CLI before resolving so the right
	// provider block and env bindings apply.
	if conf.Provider != "" {
		conf.Store.Set(provider.ConfigKeyProvider, conf.Provider)
	}

	pcfg := provider.ResolveProvider(conf.Store)

	// Override model from CLI
	if conf.Model != "" {
		pcfg.Store.Set("model", conf.Model)
	}

	return provider.Get(pcfg.Name, pcfg.Store)
}
