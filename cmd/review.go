package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sanix-darker/ghrev/internal/agent"
	"github.com/sanix-darker/ghrev/internal/common"
	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/renders"
	"github.com/sanix-darker/ghrev/internal/review"
	"github.com/sanix-darker/ghrev/internal/vcs"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReviewCmd())
}

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <owner/repo#N | PR URL>",
		Short: "Review a GitHub Pull Request using AI",
		Example: "ghrev review octocat/hello-world#42\n" +
			"ghrev review https://github.com/octocat/hello-world/pull/42 --provider anthropic",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			applyFlags(cmd, &conf)

			ref, err := review.ParseRef(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			vcsProvider, err := resolveVCSProvider(cmd, conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			p, err := resolveProvider(conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error resolving provider: %v\n", err)
				os.Exit(1)
			}

			cfg := reviewConfigFromStore(conf.Store)
			cfg.Debug = conf.Debug
			if lenses, _ := cmd.Flags().GetStringSlice("lens"); len(lenses) > 0 {
				cfg.Lenses = lenses
			}
			if err := applyReviewFlags(cmd, &cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			reviewer := agent.NewAgent(p, agent.WithModel(conf.Model))
			client := &prClient{vcs: vcsProvider}

			if conf.Debug {
				info := p.Info()
				fmt.Fprintf(os.Stderr, "[debug] provider=%s model=%s pr=%s\n",
					info.Name, info.DefaultModel, ref)
			}

			progress := func(stage string, current, total int) {
				if total > 0 {
					fmt.Fprintf(os.Stderr, "%s (%d/%d)\n", stage, current, total)
					return
				}
				fmt.Fprintf(os.Stderr, "%s...\n", stage)
			}

			result, err := review.Run(context.Background(), client, reviewer, reviewer, ref, cfg, progress)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error encoding review: %v\n", err)
					os.Exit(1)
				}
				fmt.Println(string(out))
				return
			}

			output := review.FormatReview(ref, result)

			if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
				if err := common.SetClipboardValue(output); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to copy review to clipboard: %v\n", err)
				}
			}

			fmt.Print(renders.RenderMarkdown(output))
		},
	}

	cmd.Flags().String("github-token", "", "GitHub token (or use GITHUB_TOKEN env)")
	cmd.Flags().String("github-url", "", "GitHub API base URL (or use GITHUB_API_URL env, default: https://api.github.com)")
	cmd.Flags().StringSlice("lens", nil, "Review lenses to emphasize (bugs, security, performance, quality)")
	cmd.Flags().String("depth", "", "Force the review depth: detailed, standard, or focused")
	cmd.Flags().Int("max-group-chars", 0, "Max characters of diff per review group")
	cmd.Flags().Int("max-group-files", 0, "Max files per review group")
	cmd.Flags().Bool("json", false, "Print the review as JSON instead of markdown")
	cmd.Flags().Bool("copy", false, "Copy the rendered review to the clipboard")

	return cmd
}

func resolveVCSProvider(cmd *cobra.Command, conf config.Config) (vcs.Provider, error) {
	token, _ := cmd.Flags().GetString("github-token")
	baseURL, _ := cmd.Flags().GetString("github-url")

	if token == "" {
		token = conf.GitHubToken
	}
	if baseURL == "" {
		baseURL = conf.GitHubBaseURL
	}
	if baseURL == "" {
		baseURL = os.Getenv("GITHUB_API_URL")
	}

	return vcs.Get("github", token, baseURL)
}
