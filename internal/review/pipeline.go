package review

import (
	"context"
	"fmt"
)

// ProgressCallback reports pipeline progress to the CLI.
type ProgressCallback func(stage string, current, total int)

// PRClient is the GitHub-facing capability surface the pipeline consumes.
// FetchPRFiles must return the complete changed-file set (paginating
// internally); the pipeline never sees partial pages.
type PRClient interface {
	FetchPR(ctx context.Context, ref PullRequestRef) (*PullRequestMetadata, error)
	FetchPRFiles(ctx context.Context, ref PullRequestRef) ([]ChangedFile, error)
	ContentFetcher
}

// Run executes the full review pipeline for one pull request:
// fetch metadata and files, filter, budget, group, select depth, dispatch
// per-group reviews, aggregate. Metadata/file-list fetch failures are fatal;
// everything else is absorbed into the output structure.
func Run(
	ctx context.Context,
	client PRClient,
	reviewer GroupReviewer,
	summarizer Summarizer,
	ref PullRequestRef,
	cfg ReviewConfig,
	onProgress ProgressCallback,
) (*AggregatedReview, error) {
	if onProgress == nil {
		onProgress = func(string, int, int) {}
	}

	onProgress("Fetching pull request", 0, 0)
	meta, err := client.FetchPR(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}

	onProgress("Fetching changed files", 0, 0)
	files, err := client.FetchPRFiles(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files for %s: %w", ref, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no changed files in %s", ref)
	}

	onProgress("Filtering files", 0, 0)
	reviewable, skipped := FilterFiles(files, cfg)
	if len(reviewable) == 0 {
		// Nothing reviewable is still a completed run, not an error.
		return &AggregatedReview{
			Summary:      "No reviewable changes: every changed file matched a skip rule.",
			Verdict:      VerdictComment,
			SkippedFiles: skipped,
		}, nil
	}

	budgeted, cut := BudgetFiles(reviewable, cfg.MaxPatchChars)

	totalChanges := 0
	for _, f := range budgeted {
		totalChanges += f.Changes
	}
	depth := SelectDepth(len(budgeted), totalChanges, cfg)
	if cfg.ForcedDepth != "" {
		depth = cfg.ForcedDepth
	}
	onProgress(fmt.Sprintf("Depth: %s (%d files, %d changed lines)", depth, len(budgeted), totalChanges), 0, 0)

	groups := GroupFiles(budgeted, cfg.MaxGroupChars, cfg.MaxGroupFiles)

	fileReviews, err := Dispatch(ctx, groups, depth, *meta, cfg, client, reviewer, onProgress)
	if err != nil {
		return nil, err
	}
	markTruncated(fileReviews, cut)

	onProgress("Aggregating findings", 0, 0)
	return Aggregate(ctx, fileReviews, skipped, *meta, summarizer)
}

// markTruncated flags the reviews of files whose patch was cut so the final
// artifact carries the partial-context caveat.
func markTruncated(reviews []FileReview, truncated []string) {
	if len(truncated) == 0 {
		return
	}
	set := make(map[string]bool, len(truncated))
	for _, name := range truncated {
		set[name] = true
	}
	for i := range reviews {
		if set[reviews[i].Filename] {
			reviews[i].Truncated = true
		}
	}
}
