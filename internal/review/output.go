package review

import (
	"fmt"
	"strings"
)

// FormatReview formats an AggregatedReview into CLI-friendly markdown.
func FormatReview(ref PullRequestRef, result *AggregatedReview) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Review: %s\n\n", ref))
	sb.WriteString(fmt.Sprintf("**Verdict: %s**", result.Verdict))
	if result.QualityScore > 0 {
		sb.WriteString(fmt.Sprintf(" (quality %d/10)", result.QualityScore))
	}
	sb.WriteString("\n\n")

	if result.OverrideNote != "" {
		sb.WriteString(fmt.Sprintf("> %s\n\n", result.OverrideNote))
	}

	if result.Summary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(result.Summary)
		sb.WriteString("\n\n")
	}

	writeBucket(&sb, "Critical Issues", result.CriticalIssues)
	writeBucket(&sb, "Security Concerns", result.SecurityConcerns)
	writeBucket(&sb, "Performance Notes", result.PerformanceNotes)
	writeBucket(&sb, "Suggestions", result.Suggestions)
	writeBucket(&sb, "Positive Notes", result.PositiveNotes)

	// Per-file detail
	if len(result.FileReviews) > 0 {
		sb.WriteString("## Files\n\n")
		for _, fr := range result.FileReviews {
			sb.WriteString(fmt.Sprintf("### %s\n\n", fr.Filename))

			var caveats []string
			if fr.DiffOnly {
				caveats = append(caveats, "reviewed diff-only (full content unavailable)")
			}
			if fr.Truncated {
				caveats = append(caveats, "diff truncated to fit the review budget")
			}
			if len(caveats) > 0 {
				sb.WriteString(fmt.Sprintf("_%s_\n\n", strings.Join(caveats, "; ")))
			}

			if len(fr.Findings) == 0 {
				sb.WriteString("No significant issues found.\n\n")
				continue
			}
			for _, f := range fr.Findings {
				sb.WriteString(formatFinding(f))
			}
			sb.WriteString("\n")
		}
	}

	if len(result.SkippedFiles) > 0 {
		sb.WriteString("## Skipped\n\n")
		for _, name := range result.SkippedFiles {
			sb.WriteString(fmt.Sprintf("- %s\n", name))
		}
		sb.WriteString("\n")
	}

	// Statistics
	sb.WriteString("## Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- Files reviewed: %d\n", len(result.FileReviews)))
	sb.WriteString(fmt.Sprintf("- Files skipped: %d\n", len(result.SkippedFiles)))
	issues := len(result.CriticalIssues) + len(result.SecurityConcerns) +
		len(result.PerformanceNotes) + len(result.Suggestions)
	sb.WriteString(fmt.Sprintf("- Issues: %d (%d critical, %d security, %d performance, %d suggestions)\n",
		issues,
		len(result.CriticalIssues),
		len(result.SecurityConcerns),
		len(result.PerformanceNotes),
		len(result.Suggestions)))

	return sb.String()
}

func writeBucket(sb *strings.Builder, title string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, f := range findings {
		sb.WriteString(formatFinding(f))
	}
	sb.WriteString("\n")
}

func formatFinding(f Finding) string {
	if f.Line > 0 {
		return fmt.Sprintf("- **%s:%d** [%s/%s]: %s\n",
			f.Filename, f.Line, f.Severity, f.Category, f.Message)
	}
	return fmt.Sprintf("- **%s** [%s/%s]: %s\n",
		f.Filename, f.Severity, f.Category, f.Message)
}
