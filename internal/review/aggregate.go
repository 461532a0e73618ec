package review

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// severityRank orders severities so dedup can keep the stronger instance.
var severityRank = map[Severity]int{
	SeverityCritical:   3,
	SeverityWarning:    2,
	SeveritySuggestion: 1,
	SeverityPositive:   0,
}

// Aggregate merges all per-file reviews into the terminal AggregatedReview:
// flatten, dedup, bucket by category, then one external summarization call.
// The summarizer picks the verdict, but APPROVE is never allowed while
// critical issues are outstanding; a conflicting verdict is downgraded to
// REQUEST_CHANGES with a note rather than surfaced as an error.
func Aggregate(
	ctx context.Context,
	fileReviews []FileReview,
	skipped []string,
	meta PullRequestMetadata,
	summarizer Summarizer,
) (*AggregatedReview, error) {
	deduped := dedupeReviews(fileReviews)

	var all []Finding
	for _, fr := range deduped {
		all = append(all, fr.Findings...)
	}

	out := &AggregatedReview{
		FileReviews:  deduped,
		SkippedFiles: skipped,
	}
	for _, f := range all {
		switch {
		case f.Category == CategoryPositive:
			out.PositiveNotes = append(out.PositiveNotes, f)
		case f.Severity == SeverityCritical:
			out.CriticalIssues = append(out.CriticalIssues, f)
		case f.Category == CategorySecurity:
			out.SecurityConcerns = append(out.SecurityConcerns, f)
		case f.Category == CategoryPerformance:
			out.PerformanceNotes = append(out.PerformanceNotes, f)
		default:
			out.Suggestions = append(out.Suggestions, f)
		}
	}

	summary, err := summarizer.Summarize(ctx, all, meta)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}
	out.Summary = summary.Text
	out.QualityScore = summary.QualityScore
	out.Verdict = summary.Verdict

	if out.Verdict == VerdictApprove && len(out.CriticalIssues) > 0 {
		out.Verdict = VerdictRequestChanges
		out.OverrideNote = fmt.Sprintf(
			"verdict downgraded from APPROVE: %d critical issue(s) outstanding",
			len(out.CriticalIssues),
		)
	}

	return out, nil
}

// dedupeReviews collapses near-identical findings inside each file. Two
// findings are duplicates when they share filename and category and one
// message contains the other case-insensitively; the higher-severity
// instance survives. File order and first-seen finding order are preserved.
func dedupeReviews(fileReviews []FileReview) []FileReview {
	byFile := map[string]*FileReview{}
	var order []string

	for _, fr := range fileReviews {
		existing, ok := byFile[fr.Filename]
		if !ok {
			copied := fr
			copied.Findings = append([]Finding(nil), fr.Findings...)
			byFile[fr.Filename] = &copied
			order = append(order, fr.Filename)
			continue
		}
		existing.Findings = append(existing.Findings, fr.Findings...)
		existing.DiffOnly = existing.DiffOnly || fr.DiffOnly
		existing.Truncated = existing.Truncated || fr.Truncated
	}

	out := make([]FileReview, 0, len(order))
	for _, name := range order {
		fr := byFile[name]
		fr.Findings = dedupeFindings(fr.Findings)
		out = append(out, *fr)
	}
	return out
}

func dedupeFindings(findings []Finding) []Finding {
	var kept []Finding
	for _, f := range findings {
		merged := false
		for i := range kept {
			if kept[i].Category != f.Category {
				continue
			}
			if !similarMessages(kept[i].Message, f.Message) {
				continue
			}
			if severityRank[f.Severity] > severityRank[kept[i].Severity] {
				kept[i] = f
			}
			merged = true
			break
		}
		if !merged {
			kept = append(kept, f)
		}
	}
	return kept
}

// similarMessages is the near-identical heuristic: case-insensitive
// containment either way, after whitespace normalization. Byte-identical and
// case-only variants always collapse; stricter overlap is a tunable.
func similarMessages(a, b string) bool {
	na := normalizeMessage(a)
	nb := normalizeMessage(b)
	if na == "" || nb == "" {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeMessage(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SortFindings orders findings for stable rendering: severity first, then
// filename, then line.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if severityRank[findings[i].Severity] != severityRank[findings[j].Severity] {
			return severityRank[findings[i].Severity] > severityRank[findings[j].Severity]
		}
		if findings[i].Filename != findings[j].Filename {
			return findings[i].Filename < findings[j].Filename
		}
		return findings[i].Line < findings[j].Line
	})
}
