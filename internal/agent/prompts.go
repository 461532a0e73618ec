package agent

import (
	"fmt"
	"strings"

	"github.com/sanix-darker/ghrev/internal/review"
)

// BuildGroupReviewPrompt builds the prompt that asks the AI to review one
// group of changed files from a pull request.
func BuildGroupReviewPrompt(req review.GroupReviewRequest) string {
	var sb strings.Builder

	sb.WriteString("You are an expert code reviewer examining part of a GitHub pull request.\n\n")
	sb.WriteString("## Pull Request\n")
	sb.WriteString(fmt.Sprintf("- **Title**: %s\n", req.Meta.Title))
	if desc := strings.TrimSpace(req.Meta.Body); desc != "" {
		sb.WriteString(fmt.Sprintf("- **Description**: %s\n", firstLines(desc, 10)))
	}
	sb.WriteString(fmt.Sprintf("- **Branch**: %s -> %s\n", req.Meta.HeadBranch, req.Meta.BaseBranch))
	sb.WriteString(fmt.Sprintf("- **Author**: %s\n\n", req.Meta.Author))

	sb.WriteString(fmt.Sprintf("## File Group: %s\n\n", req.Group.Key))
	for _, f := range req.Group.Files {
		sb.WriteString(fmt.Sprintf("### %s (%s, +%d/-%d)\n\n", f.Filename, f.Status, f.Additions, f.Deletions))
		if f.Patch != "" {
			sb.WriteString("```diff\n")
			sb.WriteString(f.Patch)
			sb.WriteString("\n```\n\n")
		} else {
			sb.WriteString("(no diff available, binary or oversized file)\n\n")
		}
		if content, ok := req.Contents[f.Filename]; ok {
			sb.WriteString("Full file content after the change:\n```\n")
			sb.WriteString(content.Text)
			sb.WriteString("\n```\n\n")
		}
	}

	sb.WriteString(depthInstruction(req.Depth))
	sb.WriteString(lensInstruction(req.Lenses))

	sb.WriteString(`
## Review Instructions

Report each finding on its own line in this exact format:

**path/to/file.ext:42** [SEVERITY] [CATEGORY]: Description of the issue

Where SEVERITY is one of: CRITICAL, WARNING, SUGGESTION, POSITIVE
and CATEGORY is one of: BUG, SECURITY, PERFORMANCE, STYLE, QUALITY, POSITIVE

Use the line number of a changed line. When a finding is not tied to a line,
omit the line number: **path/to/file.ext** [SEVERITY] [CATEGORY]: Description

If a file has no findings, write:
**path/to/file.ext**: No significant issues found.

Only use file paths from the group above. Keep each finding to one or two
sentences. Do not repeat the same finding with different wording.
`)

	return sb.String()
}

// BuildSummaryPrompt builds the prompt that asks the AI to summarize all
// findings into an overall assessment, quality score, and verdict.
func BuildSummaryPrompt(findings []review.Finding, meta review.PullRequestMetadata) string {
	var sb strings.Builder

	sb.WriteString("You are an expert code reviewer writing the final assessment of a pull request.\n\n")
	sb.WriteString("## Pull Request\n")
	sb.WriteString(fmt.Sprintf("- **Title**: %s\n", meta.Title))
	sb.WriteString(fmt.Sprintf("- **Files changed**: %d (+%d/-%d)\n\n",
		meta.ChangedFiles, meta.Additions, meta.Deletions))

	sb.WriteString("## Findings\n\n")
	if len(findings) == 0 {
		sb.WriteString("No findings were reported.\n\n")
	}
	for _, f := range findings {
		if f.Line > 0 {
			sb.WriteString(fmt.Sprintf("- %s:%d [%s/%s]: %s\n", f.Filename, f.Line, f.Severity, f.Category, f.Message))
		} else {
			sb.WriteString(fmt.Sprintf("- %s [%s/%s]: %s\n", f.Filename, f.Severity, f.Category, f.Message))
		}
	}

	sb.WriteString(`
## Your Task

Respond with exactly three sections:

Summary: 2-4 sentences describing what this pull request does and its overall quality.
Score: N (an integer from 1 to 10, where 10 is flawless)
Verdict: one of APPROVE, REQUEST_CHANGES, COMMENT

APPROVE only when there are no critical findings. REQUEST_CHANGES when
critical findings need fixing before merge. COMMENT for everything else.
`)

	return sb.String()
}

func depthInstruction(depth review.DepthPolicy) string {
	switch depth {
	case review.DepthDetailed:
		return `## Depth: DETAILED
Review every changed line. Report all issues including style nits and minor
improvements, and call out genuinely good changes with POSITIVE findings.
`
	case review.DepthFocused:
		return `## Depth: FOCUSED
This is a large pull request. Report only CRITICAL and WARNING findings:
bugs, security vulnerabilities, data loss risks, and architectural problems.
Skip style nits entirely.
`
	default:
		return `## Depth: STANDARD
Focus on bugs, security vulnerabilities, and significant code quality issues.
Skip trivial style nits.
`
	}
}

func lensInstruction(lenses []string) string {
	var cleaned []string
	for _, l := range lenses {
		if c := strings.TrimSpace(l); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return ""
	}
	return fmt.Sprintf("## Review Lenses\nPay particular attention to: %s.\n",
		strings.Join(cleaned, ", "))
}

// firstLines truncates a multi-line string to at most n lines.
func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
