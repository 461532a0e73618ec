package review

import "fmt"

// Severity ranks how serious a finding is.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
	SeverityPositive   Severity = "positive"
)

// Category classifies what a finding is about.
type Category string

const (
	CategoryBug         Category = "bug"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryStyle       Category = "style"
	CategoryQuality     Category = "quality"
	CategoryPositive    Category = "positive"
)

// Verdict is the overall outcome of a review run.
type Verdict string

const (
	VerdictApprove        Verdict = "APPROVE"
	VerdictRequestChanges Verdict = "REQUEST_CHANGES"
	VerdictComment        Verdict = "COMMENT"
)

// DepthPolicy controls how much context and granularity a review pass uses.
type DepthPolicy string

const (
	// DepthDetailed does full line-by-line commentary with full file content.
	DepthDetailed DepthPolicy = "detailed"
	// DepthStandard does diff-focused commentary; full content only for small files.
	DepthStandard DepthPolicy = "standard"
	// DepthFocused reviews architecture and critical issues from diffs only.
	DepthFocused DepthPolicy = "focused"
)

// PullRequestRef identifies one pull request. Immutable once created.
type PullRequestRef struct {
	Owner      string
	Repo       string
	PullNumber int
}

// Project returns the "owner/repo" form used by the GitHub API.
func (r PullRequestRef) Project() string {
	return r.Owner + "/" + r.Repo
}

// String renders the ref in the owner/repo#N form accepted by ParseRef.
func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s#%d", r.Project(), r.PullNumber)
}

// PullRequestMetadata is a read-only snapshot of the PR, fetched once per run.
// All content fetches key off HeadSHA, never off a branch name, so the review
// survives branch deletion or force pushes mid-run.
type PullRequestMetadata struct {
	Project      string // "owner/repo", recorded at fetch time
	Title        string
	Body         string
	State        string
	Author       string
	BaseBranch   string
	HeadBranch   string
	HeadSHA      string
	Labels       []string
	CreatedAt    string
	UpdatedAt    string
	Additions    int
	Deletions    int
	ChangedFiles int
}

// ChangedFile is one file touched by the PR. Patch is empty for binary or
// very large files (GitHub omits it).
type ChangedFile struct {
	Filename  string
	Status    string // "added", "modified", "removed", "renamed"
	Additions int
	Deletions int
	Changes   int
	Patch     string
}

// FileGroup is a bounded batch of files reviewed in one external invocation.
type FileGroup struct {
	Key        string
	Files      []ChangedFile
	TotalChars int
}

// Finding is one reviewer-produced observation about a file.
// Immutable once produced.
type Finding struct {
	Filename string
	Line     int // 0 when the finding is not line-anchored
	Severity Severity
	Category Category
	Message  string
}

// FileReview collects findings for one file plus per-file review gaps.
type FileReview struct {
	Filename  string
	Findings  []Finding
	DiffOnly  bool // full content was wanted but unavailable
	Truncated bool // patch or content was cut to fit a budget
}

// Summary is the output of the external summarization capability.
type Summary struct {
	Text         string
	QualityScore int // 1-10
	Verdict      Verdict
}

// AggregatedReview is the terminal artifact of a review run.
type AggregatedReview struct {
	Summary      string
	QualityScore int
	Verdict      Verdict

	CriticalIssues   []Finding
	SecurityConcerns []Finding
	PerformanceNotes []Finding
	Suggestions      []Finding
	PositiveNotes    []Finding

	FileReviews  []FileReview
	SkippedFiles []string

	// OverrideNote is set when the aggregator had to downgrade an APPROVE
	// verdict that conflicted with outstanding critical issues.
	OverrideNote string
}

// ReviewConfig holds every threshold the pipeline consults. Values come from
// the config file / flags so tests can run with arbitrary limits.
type ReviewConfig struct {
	SkipPatterns       []string
	MinDeletionsToKeep int // removed files under this many deletions are skipped

	MaxPatchChars   int // per-file diff budget
	MaxContentChars int // per-file full-content budget

	MaxGroupFiles int
	MaxGroupChars int

	// Depth breakpoints: a PR at or under the small limits reviews in
	// detailed mode, at or under the medium limits in standard mode,
	// anything bigger in focused mode.
	SmallMaxFiles    int
	SmallMaxChanges  int
	MediumMaxFiles   int
	MediumMaxChanges int

	// StandardContentMaxChars bounds which files still get full content
	// fetched under the standard depth policy.
	StandardContentMaxChars int

	// ForcedDepth, when set, bypasses size-based depth selection for the
	// whole run. Empty means select from the breakpoints above.
	ForcedDepth DepthPolicy

	Lenses []string
	Debug  bool
}

// DefaultReviewConfig returns a ReviewConfig with sensible defaults.
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{
		SkipPatterns: []string{
			"*.lock", "*lock.json", "go.sum", "yarn.lock", "Gemfile.lock",
			"vendor/*", "node_modules/*", "dist/*", "build/*", "target/*",
			"*.min.js", "*.min.css", "*.map",
			"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.svg",
			"*.pdf", "*.woff", "*.woff2", "*.ttf",
		},
		MinDeletionsToKeep:      10,
		MaxPatchChars:           20000,
		MaxContentChars:         30000,
		MaxGroupFiles:           8,
		MaxGroupChars:           60000,
		SmallMaxFiles:           10,
		SmallMaxChanges:         300,
		MediumMaxFiles:          20,
		MediumMaxChanges:        1500,
		StandardContentMaxChars: 10000,
		Lenses:                  []string{"bugs", "security", "performance", "quality"},
	}
}
