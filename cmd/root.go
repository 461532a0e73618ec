/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>

*/

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/sanix-darker/ghrev/internal/provider/init"
	_ "github.com/sanix-darker/ghrev/internal/vcs/init"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ghrev",
	Short: "AI code reviews for GitHub pull requests, in your terminal.",
	Long:  `Fetch a GitHub pull request, split its changes into reviewable groups and get an AI review with findings, a quality score and a verdict.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "AI provider to use (openai, anthropic, ...)")
	rootCmd.PersistentFlags().String("model", "", "Model override for the selected provider")
	rootCmd.PersistentFlags().Bool("debug", false, "Print debug information to stderr")
}
