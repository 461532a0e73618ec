package agent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sanix-darker/ghrev/internal/review"
)

var findingHeaderPattern = regexp.MustCompile(
	`(?i)^\s*(?:[-*]\s*)?(?:File:\s*)?([^\s]+?\.\w+)\s*(?::(\d+)|\(line\s*(\d+)\))?\s*(?:\[(\w+)\])?\s*(?:\[(\w+)\])?\s*:?\s*(.*)\s*$`,
)

var noIssuesPattern = regexp.MustCompile(`(?i)^no\s+(?:significant\s+)?issues?\b`)

// ParseFindings parses an AI markdown response into findings. It looks for
// lines like:
//
//	**path/to/file.go:42** [CRITICAL] [BUG]: message
//	**path/to/file.go** [SUGGESTION] [STYLE]: message
//
// Lines inside fenced code blocks are ignored, as are "no issues" lines.
func ParseFindings(content string) []review.Finding {
	var findings []review.Finding
	inCodeBlock := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		f, ok := parseFindingLine(line)
		if !ok {
			continue
		}
		findings = append(findings, f)
	}

	return findings
}

func parseFindingLine(line string) (review.Finding, bool) {
	normalized := strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
	if normalized == "" {
		return review.Finding{}, false
	}

	match := findingHeaderPattern.FindStringSubmatch(normalized)
	if match == nil || strings.TrimSpace(match[1]) == "" {
		return review.Finding{}, false
	}

	message := strings.TrimSpace(match[6])
	severity, hasSeverity := parseSeverity(match[4], match[5])
	category := parseCategory(match[4], match[5], severity)

	// A bare "file.go: no issues" line is not a finding. Neither is a line
	// with no structured metadata at all; that is usually prose that happens
	// to start with a path-looking token.
	if noIssuesPattern.MatchString(message) {
		return review.Finding{}, false
	}
	if !hasSeverity {
		return review.Finding{}, false
	}
	if message == "" {
		return review.Finding{}, false
	}

	lineNo := 0
	if strings.TrimSpace(match[2]) != "" {
		lineNo, _ = strconv.Atoi(strings.TrimSpace(match[2]))
	} else if strings.TrimSpace(match[3]) != "" {
		lineNo, _ = strconv.Atoi(strings.TrimSpace(match[3]))
	}

	return review.Finding{
		Filename: strings.TrimSpace(match[1]),
		Line:     lineNo,
		Severity: severity,
		Category: category,
		Message:  message,
	}, true
}

func parseSeverity(tokens ...string) (review.Severity, bool) {
	for _, raw := range tokens {
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "CRITICAL", "HIGH":
			return review.SeverityCritical, true
		case "WARNING", "MEDIUM", "WARN":
			return review.SeverityWarning, true
		case "SUGGESTION", "LOW", "INFO":
			return review.SeveritySuggestion, true
		case "POSITIVE", "PRAISE":
			return review.SeverityPositive, true
		}
	}
	return review.SeveritySuggestion, false
}

func parseCategory(first, second string, severity review.Severity) review.Category {
	for _, raw := range []string{first, second} {
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "BUG":
			return review.CategoryBug
		case "SECURITY":
			return review.CategorySecurity
		case "PERFORMANCE", "PERF":
			return review.CategoryPerformance
		case "STYLE":
			return review.CategoryStyle
		case "QUALITY":
			return review.CategoryQuality
		case "POSITIVE":
			return review.CategoryPositive
		}
	}
	if severity == review.SeverityPositive {
		return review.CategoryPositive
	}
	return review.CategoryQuality
}

var scorePattern = regexp.MustCompile(`(?im)^\s*(?:[-*]\s*)?(?:\*\*)?Score(?:\*\*)?\s*[:=]?\s*(\d+)`)
var verdictPattern = regexp.MustCompile(`(?im)^\s*(?:[-*]\s*)?(?:\*\*)?Verdict(?:\*\*)?\s*[:=]?\s*(APPROVE|REQUEST_CHANGES|COMMENT)`)
var summaryPrefixPattern = regexp.MustCompile(`(?im)^\s*(?:[-*]\s*)?(?:\*\*)?Summary(?:\*\*)?\s*[:=]?\s*`)

// ParseSummary extracts the summary text, quality score, and verdict from the
// AI's final assessment. Missing pieces fall back to a COMMENT verdict and a
// mid-range score so one malformed response never sinks the run.
func ParseSummary(content string) review.Summary {
	s := review.Summary{
		QualityScore: 5,
		Verdict:      review.VerdictComment,
	}

	if m := scorePattern.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if n < 1 {
				n = 1
			}
			if n > 10 {
				n = 10
			}
			s.QualityScore = n
		}
	}

	if m := verdictPattern.FindStringSubmatch(content); m != nil {
		s.Verdict = review.Verdict(strings.ToUpper(m[1]))
	}

	s.Text = extractSummaryText(content)
	return s
}

// extractSummaryText returns the prose part of the response: the lines that
// are not the Score/Verdict markers, with a leading "Summary:" label removed.
func extractSummaryText(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if scorePattern.MatchString(line) || verdictPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text := strings.TrimSpace(strings.Join(kept, "\n"))
	text = summaryPrefixPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
