package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/provider"
	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ghrev configuration",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigValidateCmd())
	rootCmd.AddCommand(configCmd)
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default config file at ~/.config/ghrev/config.yml",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			cfgPath, err := config.GetConfigFilePath(conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			// Create directory if needed
			dir := filepath.Dir(cfgPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
				os.Exit(1)
			}

			// Don't overwrite existing config
			if _, err := os.Stat(cfgPath); err == nil {
				fmt.Printf("Config file already exists at %s\n", cfgPath)
				return
			}

			if err := os.WriteFile(cfgPath, []byte(provider.SampleConfigYAML()), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Config file created at %s\n", cfgPath)
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print current config",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			cfgPath, err := config.GetConfigFilePath(conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			data, err := os.ReadFile(cfgPath)
			if err != nil {
				fmt.Printf("No config file found at %s\n", cfgPath)
				fmt.Println("\nDefault configuration:")
				fmt.Println(provider.SampleConfigYAML())
				return
			}

			fmt.Printf("# Config file: %s\n", cfgPath)
			fmt.Println(string(data))
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate config values and required credentials",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			applyFlags(cmd, &conf)

			errs := validateEffectiveConfig(conf)
			if len(errs) > 0 {
				fmt.Println("Configuration is invalid:")
				for _, e := range errs {
					fmt.Printf("- %s\n", e)
				}
				os.Exit(1)
			}
			fmt.Println("Configuration is valid.")
		},
	}
}

func validateEffectiveConfig(conf config.Config) []string {
	var errs []string

	if strings.TrimSpace(conf.GitHubToken) == "" {
		errs = append(errs, "github.token (or GITHUB_TOKEN) is required")
	}

	if conf.Provider != "" {
		conf.Store.Set(provider.ConfigKeyProvider, conf.Provider)
	}
	pcfg := provider.ResolveProvider(conf.Store)

	apiKey := strings.TrimSpace(pcfg.Store.GetString("api_key"))
	baseURL := strings.TrimSpace(pcfg.Store.GetString("base_url"))

	switch pcfg.Name {
	case "openai":
		if apiKey == "" {
			errs = append(errs, "providers.openai.api_key (or OPENAI_API_KEY) is required")
		}
	case "anthropic", "claude":
		if apiKey == "" {
			errs = append(errs, "providers.anthropic.api_key (or ANTHROPIC_API_KEY) is required")
		}
	default:
		if baseURL == "" {
			errs = append(errs, fmt.Sprintf("providers.%s.base_url (or GHREV_%s_BASE_URL) is required",
				pcfg.Name, strings.ToUpper(pcfg.Name)))
		}
	}

	s := conf.Store
	for _, key := range []string{
		"review.max_patch_chars",
		"review.max_content_chars",
		"review.max_group_files",
		"review.max_group_chars",
	} {
		if s.IsSet(key) && s.GetInt(key) <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0", key))
		}
	}

	return errs
}
