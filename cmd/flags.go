package cmd

import (
	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/review"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagString reads a string flag, tolerating flags that were never defined on
// this command.
func flagString(flags *pflag.FlagSet, name string) string {
	v, err := flags.GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func flagBool(flags *pflag.FlagSet, name string) bool {
	v, err := flags.GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// applyFlags copies the shared CLI flags onto the config, overriding whatever
// came from the file or the environment.
func applyFlags(cmd *cobra.Command, conf *config.Config) {
	if p := flagString(cmd.Flags(), "provider"); p != "" {
		conf.Provider = p
	}
	if m := flagString(cmd.Flags(), "model"); m != "" {
		conf.Model = m
	}
	if flagBool(cmd.Flags(), "debug") {
		conf.Debug = true
	}
}

// reviewConfigFromStore overlays the "review" config block onto the default
// review settings. Unset keys keep their defaults.
func reviewConfigFromStore(s *config.Store) review.ReviewConfig {
	cfg := review.DefaultReviewConfig()
	if s == nil {
		return cfg
	}

	if extra := s.GetStringSlice("review.skip_patterns"); len(extra) > 0 {
		cfg.SkipPatterns = append(cfg.SkipPatterns, extra...)
	}
	if lenses := s.GetStringSlice("review.lenses"); len(lenses) > 0 {
		cfg.Lenses = lenses
	}

	overrideInt(s, "review.min_deletions_to_keep", &cfg.MinDeletionsToKeep)
	overrideInt(s, "review.max_patch_chars", &cfg.MaxPatchChars)
	overrideInt(s, "review.max_content_chars", &cfg.MaxContentChars)
	overrideInt(s, "review.max_group_files", &cfg.MaxGroupFiles)
	overrideInt(s, "review.max_group_chars", &cfg.MaxGroupChars)
	overrideInt(s, "review.small_max_files", &cfg.SmallMaxFiles)
	overrideInt(s, "review.small_max_changes", &cfg.SmallMaxChanges)
	overrideInt(s, "review.medium_max_files", &cfg.MediumMaxFiles)
	overrideInt(s, "review.medium_max_changes", &cfg.MediumMaxChanges)
	overrideInt(s, "review.standard_content_max_chars", &cfg.StandardContentMaxChars)

	return cfg
}

// applyReviewFlags overlays the review command's own flags onto the review
// settings. Flags win over the config file.
func applyReviewFlags(cmd *cobra.Command, cfg *review.ReviewConfig) error {
	if d := flagString(cmd.Flags(), "depth"); d != "" {
		depth, err := review.ParseDepth(d)
		if err != nil {
			return err
		}
		cfg.ForcedDepth = depth
	}
	if n, err := cmd.Flags().GetInt("max-group-chars"); err == nil && n > 0 {
		cfg.MaxGroupChars = n
	}
	if n, err := cmd.Flags().GetInt("max-group-files"); err == nil && n > 0 {
		cfg.MaxGroupFiles = n
	}
	return nil
}

func overrideInt(s *config.Store, key string, dst *int) {
	if s.IsSet(key) {
		if v := s.GetInt(key); v > 0 {
			*dst = v
		}
	}
}
