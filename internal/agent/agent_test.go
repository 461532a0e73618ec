package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sanix-darker/ghrev/internal/provider"
	"github.com/sanix-darker/ghrev/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	mu       sync.Mutex
	requests []provider.CompletionRequest
	response string
	err      error
}

func (p *scriptedProvider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "scripted", DefaultModel: "test-model"}
}

func (p *scriptedProvider) Complete(_ context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &provider.CompletionResponse{Content: p.response}, nil
}

func (p *scriptedProvider) Validate(_ context.Context) error { return nil }

func groupRequest(files ...review.ChangedFile) review.GroupReviewRequest {
	return review.GroupReviewRequest{
		Meta: review.PullRequestMetadata{
			Project:    "octo/demo",
			Title:      "Add request tracing",
			Author:     "octocat",
			BaseBranch: "main",
			HeadBranch: "feature/tracing",
		},
		Group:  review.FileGroup{Key: "internal", Files: files},
		Depth:  review.DepthStandard,
		Lenses: []string{"bugs", "security"},
	}
}

func TestReviewGroup_MapsFindingsToFiles(t *testing.T) {
	p := &scriptedProvider{response: `**internal/a.go:3** [CRITICAL] [BUG]: off by one
**internal/a.go:9** [SUGGESTION] [STYLE]: unexported helper
**internal/b.go**: No significant issues found.
`}
	a := NewAgent(p)

	reviews, err := a.ReviewGroup(context.Background(), groupRequest(
		review.ChangedFile{Filename: "internal/a.go", Status: "modified", Patch: "+x"},
		review.ChangedFile{Filename: "internal/b.go", Status: "modified", Patch: "+y"},
	))
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "internal/a.go", reviews[0].Filename)
	require.Len(t, reviews[0].Findings, 2)
	assert.Equal(t, review.SeverityCritical, reviews[0].Findings[0].Severity)

	assert.Equal(t, "internal/b.go", reviews[1].Filename)
	assert.Empty(t, reviews[1].Findings)
}

func TestReviewGroup_DropsInventedPaths(t *testing.T) {
	p := &scriptedProvider{response: "**does/not/exist.go:1** [CRITICAL] [BUG]: hallucinated"}
	a := NewAgent(p)

	reviews, err := a.ReviewGroup(context.Background(), groupRequest(
		review.ChangedFile{Filename: "internal/a.go", Status: "modified"},
	))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Empty(t, reviews[0].Findings)
}

func TestReviewGroup_PromptCarriesContext(t *testing.T) {
	p := &scriptedProvider{response: "nothing"}
	a := NewAgent(p, WithModel("custom-model"), WithMaxTokens(1000))

	req := groupRequest(review.ChangedFile{
		Filename: "internal/a.go", Status: "modified", Patch: "@@ -1 +1 @@\n-old\n+new",
	})
	req.Contents = map[string]review.Budgeted{
		"internal/a.go": {Text: "package a\n\nfunc New() {}"},
	}

	_, err := a.ReviewGroup(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.requests, 1)
	sent := p.requests[0]
	assert.Equal(t, "custom-model", sent.Model)
	assert.Equal(t, 1000, sent.MaxTokens)
	require.NotNil(t, sent.Temperature)
	assert.Equal(t, 0.2, *sent.Temperature)
	require.Len(t, sent.Messages, 1)
	prompt := sent.Messages[0].Content
	assert.Contains(t, prompt, "Add request tracing")
	assert.Contains(t, prompt, "@@ -1 +1 @@")
	assert.Contains(t, prompt, "func New() {}")
	assert.Contains(t, prompt, "bugs, security")
}

func TestReviewGroup_ProviderError(t *testing.T) {
	p := &scriptedProvider{err: errors.New("rate limited")}
	a := NewAgent(p)

	_, err := a.ReviewGroup(context.Background(), groupRequest(
		review.ChangedFile{Filename: "internal/a.go"},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal")
}

func TestSummarize_ParsesResponse(t *testing.T) {
	p := &scriptedProvider{response: "Summary: Good change.\nScore: 8\nVerdict: APPROVE\n"}
	a := NewAgent(p)

	s, err := a.Summarize(context.Background(), []review.Finding{
		{Filename: "a.go", Line: 3, Severity: review.SeverityWarning, Category: review.CategoryBug, Message: "m"},
	}, review.PullRequestMetadata{Title: "t", ChangedFiles: 1})
	require.NoError(t, err)
	assert.Equal(t, review.VerdictApprove, s.Verdict)
	assert.Equal(t, 8, s.QualityScore)
	assert.Equal(t, "Good change.", s.Text)

	require.Len(t, p.requests, 1)
	assert.Contains(t, p.requests[0].Messages[0].Content, "a.go:3")
}

func TestDepthInstruction_VariesByPolicy(t *testing.T) {
	detailed := BuildGroupReviewPrompt(review.GroupReviewRequest{Depth: review.DepthDetailed})
	focused := BuildGroupReviewPrompt(review.GroupReviewRequest{Depth: review.DepthFocused})
	assert.Contains(t, detailed, "DETAILED")
	assert.Contains(t, focused, "FOCUSED")
	assert.Contains(t, focused, "Skip style nits entirely")
}
