package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	meta     *PullRequestMetadata
	metaErr  error
	files    []ChangedFile
	filesErr error
	fakeFetcher
}

func (c *fakeClient) FetchPR(_ context.Context, _ PullRequestRef) (*PullRequestMetadata, error) {
	return c.meta, c.metaErr
}

func (c *fakeClient) FetchPRFiles(_ context.Context, _ PullRequestRef) ([]ChangedFile, error) {
	return c.files, c.filesErr
}

func testRef() PullRequestRef {
	return PullRequestRef{Owner: "octo", Repo: "demo", PullNumber: 42}
}

func TestRun_EndToEnd(t *testing.T) {
	client := &fakeClient{
		meta: &PullRequestMetadata{Project: "octo/demo", Title: "Add widget", HeadSHA: "abc123"},
		files: []ChangedFile{
			{Filename: "package-lock.json", Status: "modified", Changes: 900, Patch: "x"},
			{Filename: "src/widget.ts", Status: "added", Additions: 30, Changes: 30, Patch: "+widget"},
			{Filename: "src/widget.test.ts", Status: "added", Additions: 10, Changes: 10, Patch: "+test"},
		},
	}
	reviewer := &fakeReviewer{perFile: map[string][]Finding{
		"src/widget.ts": {{Filename: "src/widget.ts", Line: 3, Severity: SeverityWarning, Category: CategoryBug, Message: "unchecked cast"}},
	}}
	summarizer := &fakeSummarizer{summary: Summary{Text: "looks fine", QualityScore: 8, Verdict: VerdictComment}}

	cfg := DefaultReviewConfig()
	out, err := Run(context.Background(), client, reviewer, summarizer, testRef(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"package-lock.json"}, out.SkippedFiles)
	assert.Len(t, out.FileReviews, 2)
	assert.Equal(t, VerdictComment, out.Verdict)
	assert.Equal(t, 8, out.QualityScore)
	assert.Equal(t, 1, summarizer.called)

	// Small PR: depth must be detailed on every group request.
	for _, req := range reviewer.requests {
		assert.Equal(t, DepthDetailed, req.Depth)
		assert.Equal(t, "Add widget", req.Meta.Title)
	}
}

func TestRun_MetadataFailureIsFatal(t *testing.T) {
	client := &fakeClient{metaErr: errors.New("404 not found")}
	_, err := Run(context.Background(), client, &fakeReviewer{}, &fakeSummarizer{}, testRef(), DefaultReviewConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octo/demo#42")
}

func TestRun_FileListFailureIsFatal(t *testing.T) {
	client := &fakeClient{
		meta:     &PullRequestMetadata{Project: "octo/demo"},
		filesErr: errors.New("rate limited"),
	}
	_, err := Run(context.Background(), client, &fakeReviewer{}, &fakeSummarizer{}, testRef(), DefaultReviewConfig(), nil)
	assert.Error(t, err)
}

func TestRun_NothingReviewable(t *testing.T) {
	client := &fakeClient{
		meta: &PullRequestMetadata{Project: "octo/demo"},
		files: []ChangedFile{
			{Filename: "yarn.lock", Status: "modified"},
			{Filename: "logo.png", Status: "added"},
		},
	}
	summarizer := &fakeSummarizer{}

	out, err := Run(context.Background(), client, &fakeReviewer{}, summarizer, testRef(), DefaultReviewConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictComment, out.Verdict)
	assert.Len(t, out.SkippedFiles, 2)
	assert.Zero(t, summarizer.called, "no summarizer call without reviewable files")
}

func TestRun_TruncationSurfacesInOutput(t *testing.T) {
	client := &fakeClient{
		meta: &PullRequestMetadata{Project: "octo/demo", HeadSHA: "abc"},
		files: []ChangedFile{
			{Filename: "src/big.go", Status: "modified", Changes: 2000, Patch: strings.Repeat("+", 50000)},
		},
	}
	reviewer := &fakeReviewer{}
	summarizer := &fakeSummarizer{summary: Summary{Verdict: VerdictComment}}

	cfg := DefaultReviewConfig()
	cfg.MaxPatchChars = 20000
	out, err := Run(context.Background(), client, reviewer, summarizer, testRef(), cfg, nil)
	require.NoError(t, err)

	require.Len(t, out.FileReviews, 1)
	assert.True(t, out.FileReviews[0].Truncated)
	// The reviewer must have received the budgeted patch, not the raw one.
	assert.LessOrEqual(t, len(reviewer.requests[0].Group.Files[0].Patch), 20000)
}

func TestRun_ForcedDepthOverridesSizeSelection(t *testing.T) {
	// Big enough to land in focused mode when left to the breakpoints.
	var files []ChangedFile
	for i := 0; i < 25; i++ {
		files = append(files, ChangedFile{
			Filename: fmt.Sprintf("internal/p%d/f%d.go", i%5, i),
			Status:   "modified",
			Changes:  200,
			Patch:    "+x",
		})
	}
	client := &fakeClient{meta: &PullRequestMetadata{Project: "octo/demo", HeadSHA: "abc"}, files: files}
	reviewer := &fakeReviewer{}
	summarizer := &fakeSummarizer{summary: Summary{Verdict: VerdictComment}}

	cfg := DefaultReviewConfig()
	cfg.ForcedDepth = DepthDetailed
	_, err := Run(context.Background(), client, reviewer, summarizer, testRef(), cfg, nil)
	require.NoError(t, err)

	require.NotEmpty(t, reviewer.requests)
	for _, req := range reviewer.requests {
		assert.Equal(t, DepthDetailed, req.Depth)
	}
}

func TestRun_GroupCountConservation(t *testing.T) {
	var files []ChangedFile
	for i := 0; i < 30; i++ {
		files = append(files, ChangedFile{
			Filename:  fmt.Sprintf("internal/p%d/f%d.go", i%5, i),
			Status:    "modified",
			Changes:   100,
			Patch:     strings.Repeat("x", 3000),
			Additions: 50,
		})
	}
	client := &fakeClient{meta: &PullRequestMetadata{Project: "octo/demo", HeadSHA: "abc"}, files: files}
	reviewer := &fakeReviewer{}
	summarizer := &fakeSummarizer{summary: Summary{Verdict: VerdictComment}}

	cfg := DefaultReviewConfig()
	out, err := Run(context.Background(), client, reviewer, summarizer, testRef(), cfg, nil)
	require.NoError(t, err)

	reviewedCount := 0
	for _, req := range reviewer.requests {
		reviewedCount += len(req.Group.Files)
	}
	assert.Equal(t, len(out.FileReviews)+len(out.SkippedFiles), len(files))
	assert.Equal(t, reviewedCount, len(files)-len(out.SkippedFiles))
}
