package review

import (
	"context"
	"fmt"
	"sync"
)

// GroupReviewRequest is everything the external review capability needs to
// review one group of files.
type GroupReviewRequest struct {
	Meta     PullRequestMetadata
	Group    FileGroup
	Contents map[string]Budgeted // filename -> budgeted full content, when fetched
	Depth    DepthPolicy
	Lenses   []string
}

// GroupReviewer is the LLM-backed review capability, one call per group.
type GroupReviewer interface {
	ReviewGroup(ctx context.Context, req GroupReviewRequest) ([]FileReview, error)
}

// Summarizer is the LLM-backed aggregation capability, one call per run.
type Summarizer interface {
	Summarize(ctx context.Context, findings []Finding, meta PullRequestMetadata) (Summary, error)
}

// ContentFetcher fetches a file's full content at a ref (a commit SHA).
// A missing file/ref returns ok=false with a nil error.
type ContentFetcher interface {
	FetchFileContent(ctx context.Context, project, path, ref string) (content string, ok bool, err error)
}

// Dispatch runs one review per group. Groups are mutually independent and
// reviewed concurrently; results come back in group order regardless of
// completion order. A single file's content-fetch failure degrades that file
// to diff-only instead of aborting the group, and never cancels siblings.
func Dispatch(
	ctx context.Context,
	groups []FileGroup,
	depth DepthPolicy,
	meta PullRequestMetadata,
	cfg ReviewConfig,
	fetcher ContentFetcher,
	reviewer GroupReviewer,
	onProgress ProgressCallback,
) ([]FileReview, error) {
	results := make([][]FileReview, len(groups))
	errs := make([]error, len(groups))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i := range groups {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = reviewOneGroup(ctx, groups[i], depth, meta, cfg, fetcher, reviewer)

			mu.Lock()
			done++
			onProgress("Reviewing groups", done, len(groups))
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	var all []FileReview
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("review of group %d (%s) failed: %w", i+1, groups[i].Key, err)
		}
		all = append(all, results[i]...)
	}
	return all, nil
}

func reviewOneGroup(
	ctx context.Context,
	group FileGroup,
	depth DepthPolicy,
	meta PullRequestMetadata,
	cfg ReviewConfig,
	fetcher ContentFetcher,
	reviewer GroupReviewer,
) ([]FileReview, error) {
	req := GroupReviewRequest{
		Meta:   meta,
		Group:  group,
		Depth:  depth,
		Lenses: cfg.Lenses,
	}

	diffOnly := map[string]bool{}
	if fetcher != nil {
		req.Contents = map[string]Budgeted{}
		for _, f := range group.Files {
			if f.Status == "removed" || !depth.wantsFullContent(len(f.Patch), cfg) {
				continue
			}
			// Fetch at the head commit SHA, never at a branch name.
			content, ok, err := fetcher.FetchFileContent(ctx, meta.Project, f.Filename, meta.HeadSHA)
			if err != nil || !ok {
				// Reviewed diff-only; the gap is recorded, not fatal.
				diffOnly[f.Filename] = true
				continue
			}
			req.Contents[f.Filename] = Truncate(content, cfg.MaxContentChars)
		}
	}

	reviews, err := reviewer.ReviewGroup(ctx, req)
	if err != nil {
		return nil, err
	}

	// Stamp per-file gaps onto the results, creating empty reviews for any
	// file the reviewer did not mention so no file goes unaccounted.
	byName := map[string]int{}
	for i, fr := range reviews {
		byName[fr.Filename] = i
	}
	for _, f := range group.Files {
		i, ok := byName[f.Filename]
		if !ok {
			reviews = append(reviews, FileReview{Filename: f.Filename, DiffOnly: diffOnly[f.Filename]})
			continue
		}
		if diffOnly[f.Filename] {
			reviews[i].DiffOnly = true
		}
	}
	return reviews, nil
}
