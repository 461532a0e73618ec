package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/sanix-darker/ghrev/internal/review"
	"github.com/sanix-darker/ghrev/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVCS struct {
	pr      *vcs.PullRequest
	files   []vcs.PRFile
	content *vcs.FileContent
	err     error

	lastProject string
	lastRef     string
}

func (s *stubVCS) Info() vcs.ProviderInfo { return vcs.ProviderInfo{Name: "stub"} }

func (s *stubVCS) FetchPR(_ context.Context, projectID string, number int) (*vcs.PullRequest, error) {
	s.lastProject = projectID
	return s.pr, s.err
}

func (s *stubVCS) FetchPRFiles(_ context.Context, projectID string, number int) ([]vcs.PRFile, error) {
	s.lastProject = projectID
	return s.files, s.err
}

func (s *stubVCS) FetchFileContent(_ context.Context, projectID, path, ref string) (*vcs.FileContent, error) {
	s.lastProject = projectID
	s.lastRef = ref
	return s.content, s.err
}

func (s *stubVCS) Validate() error { return nil }

func TestPRClient_FetchPRMapsFields(t *testing.T) {
	stub := &stubVCS{pr: &vcs.PullRequest{
		Number:       42,
		Title:        "Add caching",
		Body:         "Adds an LRU cache",
		Author:       "octocat",
		State:        "open",
		SourceBranch: "feature/cache",
		TargetBranch: "main",
		HeadSHA:      "abc123",
		Labels:       []string{"enhancement"},
		Additions:    10,
		Deletions:    2,
		ChangedFiles: 3,
	}}
	client := &prClient{vcs: stub}

	ref := review.PullRequestRef{Owner: "octo", Repo: "demo", PullNumber: 42}
	meta, err := client.FetchPR(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, "octo/demo", stub.lastProject)
	assert.Equal(t, "octo/demo", meta.Project)
	assert.Equal(t, "Add caching", meta.Title)
	assert.Equal(t, "main", meta.BaseBranch)
	assert.Equal(t, "feature/cache", meta.HeadBranch)
	assert.Equal(t, "abc123", meta.HeadSHA)
	assert.Equal(t, 3, meta.ChangedFiles)
}

func TestPRClient_FetchPRFiles(t *testing.T) {
	stub := &stubVCS{files: []vcs.PRFile{
		{Filename: "a.go", Status: "modified", Additions: 5, Deletions: 1, Changes: 6, Patch: "+x"},
		{Filename: "b.go", Status: "added", Additions: 3, Changes: 3, Patch: "+y"},
	}}
	client := &prClient{vcs: stub}

	files, err := client.FetchPRFiles(context.Background(), review.PullRequestRef{Owner: "o", Repo: "r", PullNumber: 1})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Filename)
	assert.Equal(t, 6, files[0].Changes)
	assert.Equal(t, "+y", files[1].Patch)
}

func TestPRClient_FetchFileContent(t *testing.T) {
	stub := &stubVCS{content: &vcs.FileContent{Content: "package a"}}
	client := &prClient{vcs: stub}

	content, ok, err := client.FetchFileContent(context.Background(), "o/r", "a.go", "abc123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "package a", content)
	assert.Equal(t, "abc123", stub.lastRef)
}

func TestPRClient_FetchFileContent_Missing(t *testing.T) {
	client := &prClient{vcs: &stubVCS{}}
	_, ok, err := client.FetchFileContent(context.Background(), "o/r", "gone.go", "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPRClient_FetchFileContent_Error(t *testing.T) {
	client := &prClient{vcs: &stubVCS{err: errors.New("boom")}}
	_, ok, err := client.FetchFileContent(context.Background(), "o/r", "a.go", "abc123")
	require.Error(t, err)
	assert.False(t, ok)
}
