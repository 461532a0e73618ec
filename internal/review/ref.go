package review

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidRef marks an input that could not be parsed into a PR reference.
// Check with errors.Is.
var ErrInvalidRef = errors.New("invalid pull request reference")

// ParseRef parses a pull request reference from user input. Accepted forms:
//
//	owner/repo#123
//	https://github.com/owner/repo/pull/123
//	github.com/owner/repo/pull/123
//
// Validation happens before any network call; failures wrap ErrInvalidRef.
func ParseRef(input string) (PullRequestRef, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return PullRequestRef{}, fmt.Errorf("%w: empty input", ErrInvalidRef)
	}

	if strings.Contains(s, "#") {
		return parseShortRef(s)
	}
	return parseURLRef(s)
}

func parseShortRef(s string) (PullRequestRef, error) {
	parts := strings.SplitN(s, "#", 2)
	project := strings.Split(parts[0], "/")
	if len(project) != 2 || project[0] == "" || project[1] == "" {
		return PullRequestRef{}, fmt.Errorf("%w: expected owner/repo#number, got %q", ErrInvalidRef, s)
	}
	number, err := strconv.Atoi(parts[1])
	if err != nil || number <= 0 {
		return PullRequestRef{}, fmt.Errorf("%w: bad pull number %q", ErrInvalidRef, parts[1])
	}
	return PullRequestRef{Owner: project[0], Repo: project[1], PullNumber: number}, nil
}

func parseURLRef(s string) (PullRequestRef, error) {
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	if !strings.HasSuffix(u.Hostname(), "github.com") {
		return PullRequestRef{}, fmt.Errorf("%w: not a github.com URL: %q", ErrInvalidRef, s)
	}

	// Expect /owner/repo/pull/123 with an optional trailing path.
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 4 || segments[2] != "pull" {
		return PullRequestRef{}, fmt.Errorf("%w: expected /owner/repo/pull/<number> in %q", ErrInvalidRef, s)
	}
	number, err := strconv.Atoi(segments[3])
	if err != nil || number <= 0 {
		return PullRequestRef{}, fmt.Errorf("%w: bad pull number %q", ErrInvalidRef, segments[3])
	}
	return PullRequestRef{Owner: segments[0], Repo: segments[1], PullNumber: number}, nil
}
