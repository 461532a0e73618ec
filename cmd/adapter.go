package cmd

import (
	"context"

	"github.com/sanix-darker/ghrev/internal/review"
	"github.com/sanix-darker/ghrev/internal/vcs"
)

// prClient adapts a vcs.Provider to the client surface the review pipeline
// consumes.
type prClient struct {
	vcs vcs.Provider
}

func (c *prClient) FetchPR(ctx context.Context, ref review.PullRequestRef) (*review.PullRequestMetadata, error) {
	pr, err := c.vcs.FetchPR(ctx, ref.Project(), ref.PullNumber)
	if err != nil {
		return nil, err
	}
	return &review.PullRequestMetadata{
		Project:      ref.Project(),
		Title:        pr.Title,
		Body:         pr.Body,
		State:        pr.State,
		Author:       pr.Author,
		BaseBranch:   pr.TargetBranch,
		HeadBranch:   pr.SourceBranch,
		HeadSHA:      pr.HeadSHA,
		Labels:       pr.Labels,
		CreatedAt:    pr.CreatedAt,
		UpdatedAt:    pr.UpdatedAt,
		Additions:    pr.Additions,
		Deletions:    pr.Deletions,
		ChangedFiles: pr.ChangedFiles,
	}, nil
}

func (c *prClient) FetchPRFiles(ctx context.Context, ref review.PullRequestRef) ([]review.ChangedFile, error) {
	files, err := c.vcs.FetchPRFiles(ctx, ref.Project(), ref.PullNumber)
	if err != nil {
		return nil, err
	}
	out := make([]review.ChangedFile, len(files))
	for i, f := range files {
		out[i] = review.ChangedFile{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Changes:   f.Changes,
			Patch:     f.Patch,
		}
	}
	return out, nil
}

func (c *prClient) FetchFileContent(ctx context.Context, project, path, ref string) (string, bool, error) {
	fc, err := c.vcs.FetchFileContent(ctx, project, path, ref)
	if err != nil {
		return "", false, err
	}
	if fc == nil {
		return "", false, nil
	}
	return fc.Content, true, nil
}
