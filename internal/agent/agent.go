package agent

import (
	"context"
	"fmt"

	"github.com/sanix-darker/ghrev/internal/provider"
	"github.com/sanix-darker/ghrev/internal/review"
)

// Agent turns an AIProvider into the review capabilities the pipeline needs.
// One Agent is shared by all concurrent group reviews; it holds no mutable
// state.
type Agent struct {
	provider    provider.AIProvider
	model       string
	maxTokens   int
	temperature float64
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithMaxTokens caps the completion size per call.
func WithMaxTokens(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// NewAgent creates an Agent backed by the given provider.
func NewAgent(p provider.AIProvider, opts ...Option) *Agent {
	a := &Agent{
		provider:    p,
		model:       p.Info().DefaultModel,
		maxTokens:   4096,
		temperature: 0.2,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ReviewGroup sends one group of files to the model and parses the findings
// back into per-file reviews. Every file in the group gets a FileReview even
// when the model had nothing to say about it.
func (a *Agent) ReviewGroup(ctx context.Context, req review.GroupReviewRequest) ([]review.FileReview, error) {
	prompt := BuildGroupReviewPrompt(req)

	resp, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", req.Group.Key, err)
	}

	findings := ParseFindings(resp.Content)

	// Index group membership so stray paths the model invented are dropped.
	inGroup := make(map[string]int, len(req.Group.Files))
	reviews := make([]review.FileReview, len(req.Group.Files))
	for i, f := range req.Group.Files {
		inGroup[f.Filename] = i
		reviews[i] = review.FileReview{Filename: f.Filename}
	}
	for _, f := range findings {
		i, ok := inGroup[f.Filename]
		if !ok {
			continue
		}
		reviews[i].Findings = append(reviews[i].Findings, f)
	}
	return reviews, nil
}

// Summarize sends the aggregated findings to the model and parses the overall
// assessment.
func (a *Agent) Summarize(ctx context.Context, findings []review.Finding, meta review.PullRequestMetadata) (review.Summary, error) {
	prompt := BuildSummaryPrompt(findings, meta)

	resp, err := a.complete(ctx, prompt)
	if err != nil {
		return review.Summary{}, fmt.Errorf("summarize: %w", err)
	}
	return ParseSummary(resp.Content), nil
}

func (a *Agent) complete(ctx context.Context, prompt string) (*provider.CompletionResponse, error) {
	req := provider.CompletionRequest{
		Model: a.model,
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: prompt},
		},
		MaxTokens:   a.maxTokens,
		Temperature: &a.temperature,
	}
	return a.provider.Complete(ctx, req)
}
