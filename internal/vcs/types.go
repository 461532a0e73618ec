package vcs

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a repository, pull request, or ref does not
// exist. Check with errors.Is.
var ErrNotFound = errors.New("not found")

// Provider abstracts the hosting platform's pull request API.
type Provider interface {
	Info() ProviderInfo

	// FetchPR fetches a pull request snapshot. NotFound PRs fail with
	// ErrNotFound.
	FetchPR(ctx context.Context, projectID string, number int) (*PullRequest, error)

	// FetchPRFiles returns the complete changed-file set for a PR,
	// paginating internally. Callers never see partial pages.
	FetchPRFiles(ctx context.Context, projectID string, number int) ([]PRFile, error)

	// FetchFileContent fetches a file's content at a ref. The ref should be
	// a commit SHA for stability. A missing file/ref returns (nil, nil).
	FetchFileContent(ctx context.Context, projectID, path, ref string) (*FileContent, error)

	Validate() error
}

// ProviderInfo describes a VCS provider.
type ProviderInfo struct {
	Name    string
	BaseURL string
}

// PullRequest holds pull request metadata.
type PullRequest struct {
	Number       int
	Title        string
	Body         string
	Author       string
	State        string
	SourceBranch string
	TargetBranch string
	HeadSHA      string
	BaseSHA      string
	Labels       []string
	CreatedAt    string
	UpdatedAt    string
	Additions    int
	Deletions    int
	ChangedFiles int
	WebURL       string
}

// PRFile represents a single changed file in a pull request.
type PRFile struct {
	Filename  string
	Status    string // "added", "modified", "removed", "renamed"
	Additions int
	Deletions int
	Changes   int
	Patch     string // empty for binary or very large files
}

// FileContent is a file blob fetched at a specific ref.
type FileContent struct {
	Content  string
	Encoding string
	Size     int
}
