package review

import (
	"fmt"
	"strings"
)

// ParseDepth validates a depth policy name coming from a flag or config.
func ParseDepth(s string) (DepthPolicy, error) {
	switch DepthPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DepthDetailed:
		return DepthDetailed, nil
	case DepthStandard:
		return DepthStandard, nil
	case DepthFocused:
		return DepthFocused, nil
	}
	return "", fmt.Errorf("invalid depth %q (valid: detailed, standard, focused)", s)
}

// SelectDepth picks the review-depth policy for a run from the reviewable
// totals. The decision is made once per run; whichever breakpoint is more
// restrictive (file count or changed lines) governs, so a 3-file PR with a
// huge diff still drops out of detailed mode.
func SelectDepth(totalFiles, totalChanges int, cfg ReviewConfig) DepthPolicy {
	if totalFiles <= cfg.SmallMaxFiles && totalChanges <= cfg.SmallMaxChanges {
		return DepthDetailed
	}
	if totalFiles <= cfg.MediumMaxFiles && totalChanges <= cfg.MediumMaxChanges {
		return DepthStandard
	}
	return DepthFocused
}

// wantsFullContent reports whether the depth policy asks for the full file
// content of a file whose budgeted patch is patchChars long.
func (d DepthPolicy) wantsFullContent(patchChars int, cfg ReviewConfig) bool {
	switch d {
	case DepthDetailed:
		return true
	case DepthStandard:
		return patchChars <= cfg.StandardContentMaxChars
	default:
		return false
	}
}
