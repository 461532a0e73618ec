package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sanix-darker/ghrev/internal/vcs"
)

// Provider implements vcs.Provider for GitHub.
type Provider struct {
	client  *http.Client
	baseURL string
	token   string
}

func init() {
	vcs.Register("github", NewProvider)
}

// NewProvider creates a GitHub vcs.Provider.
func NewProvider(token, baseURL string) (vcs.Provider, error) {
	if token == "" {
		return nil, fmt.Errorf("github: token is required")
	}
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &Provider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}, nil
}

func (p *Provider) Info() vcs.ProviderInfo {
	return vcs.ProviderInfo{Name: "github", BaseURL: p.baseURL}
}

func (p *Provider) Validate() error {
	if p.token == "" {
		return fmt.Errorf("github: token is required")
	}
	return nil
}

func (p *Provider) FetchPR(ctx context.Context, projectID string, number int) (*vcs.PullRequest, error) {
	var pr struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		User   struct {
			Login string `json:"login"`
		} `json:"user"`
		Head struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		} `json:"head"`
		Base struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		} `json:"base"`
		Labels []struct {
			Name string `json:"name"`
		} `json:"labels"`
		State        string `json:"state"`
		CreatedAt    string `json:"created_at"`
		UpdatedAt    string `json:"updated_at"`
		Additions    int    `json:"additions"`
		Deletions    int    `json:"deletions"`
		ChangedFiles int    `json:"changed_files"`
		HTMLURL      string `json:"html_url"`
	}

	if err := p.getJSON(ctx, fmt.Sprintf("/repos/%s/pulls/%d", projectID, number), &pr); err != nil {
		return nil, fmt.Errorf("github: failed to fetch PR %s#%d: %w", projectID, number, err)
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.Name)
	}

	return &vcs.PullRequest{
		Number:       pr.Number,
		Title:        pr.Title,
		Body:         pr.Body,
		Author:       pr.User.Login,
		State:        pr.State,
		SourceBranch: pr.Head.Ref,
		TargetBranch: pr.Base.Ref,
		HeadSHA:      pr.Head.SHA,
		BaseSHA:      pr.Base.SHA,
		Labels:       labels,
		CreatedAt:    pr.CreatedAt,
		UpdatedAt:    pr.UpdatedAt,
		Additions:    pr.Additions,
		Deletions:    pr.Deletions,
		ChangedFiles: pr.ChangedFiles,
		WebURL:       pr.HTMLURL,
	}, nil
}

func (p *Provider) FetchPRFiles(ctx context.Context, projectID string, number int) ([]vcs.PRFile, error) {
	type prFile struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Changes   int    `json:"changes"`
		Patch     string `json:"patch"`
	}

	var all []vcs.PRFile
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/pulls/%d/files?per_page=100&page=%d", projectID, number, page)
		var files []prFile
		resp, err := p.getJSONWithResponse(ctx, endpoint, &files)
		if err != nil {
			return nil, fmt.Errorf("github: failed to fetch PR files: %w", err)
		}

		for _, f := range files {
			all = append(all, vcs.PRFile{
				Filename:  f.Filename,
				Status:    strings.ToLower(f.Status),
				Additions: f.Additions,
				Deletions: f.Deletions,
				Changes:   f.Changes,
				Patch:     f.Patch,
			})
		}

		if !hasNextPage(resp.Header.Get("Link")) {
			break
		}
		page++
	}

	return all, nil
}

func (p *Provider) FetchFileContent(ctx context.Context, projectID, path, ref string) (*vcs.FileContent, error) {
	endpoint := fmt.Sprintf("/repos/%s/contents/%s?ref=%s",
		projectID, escapePath(path), url.QueryEscape(ref))

	var file struct {
		Type     string `json:"type"`
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
		Size     int    `json:"size"`
	}

	err := p.getJSON(ctx, endpoint, &file)
	if err != nil {
		// A missing file/ref is not an error: the caller reviews diff-only.
		if errors.Is(err, vcs.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("github: failed to fetch content of %s@%s: %w", path, ref, err)
	}

	if file.Type != "" && file.Type != "file" {
		return nil, nil
	}

	content := file.Content
	if file.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(
			strings.ReplaceAll(content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("github: failed to decode content of %s: %w", path, err)
		}
		content = string(decoded)
	}

	return &vcs.FileContent{
		Content:  content,
		Encoding: file.Encoding,
		Size:     file.Size,
	}, nil
}

func (p *Provider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	_, err := p.getJSONWithResponse(ctx, endpoint, out)
	return err
}

func (p *Provider) getJSONWithResponse(ctx context.Context, endpoint string, out interface{}) (*http.Response, error) {
	req, err := p.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp, fmt.Errorf("github: %w", vcs.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return resp, fmt.Errorf("github: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

func (p *Provider) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	u, err := url.Parse(p.baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "ghrev-cli")
	req.Header.Set("Authorization", "Bearer "+p.token)
	return req, nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func hasNextPage(linkHeader string) bool {
	if linkHeader == "" {
		return false
	}
	parts := strings.Split(linkHeader, ",")
	for _, part := range parts {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
