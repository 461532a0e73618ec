package review

import (
	"path"
	"strings"
)

// FilterFiles partitions the full changed-file set into the files worth
// reviewing and the filenames that were skipped. The partition is stable:
// reviewable keeps the input order, and every input file lands in exactly
// one of the two sets.
func FilterFiles(files []ChangedFile, cfg ReviewConfig) (reviewable []ChangedFile, skipped []string) {
	for _, f := range files {
		if shouldSkip(f, cfg) {
			skipped = append(skipped, f.Filename)
			continue
		}
		reviewable = append(reviewable, f)
	}
	return reviewable, skipped
}

func shouldSkip(f ChangedFile, cfg ReviewConfig) bool {
	for _, pattern := range cfg.SkipPatterns {
		if matchSkipPattern(pattern, f.Filename) {
			return true
		}
	}

	// Trivial deletions are not worth reviewing.
	if f.Status == "removed" && f.Deletions < cfg.MinDeletionsToKeep {
		return true
	}

	return false
}

// matchSkipPattern matches shell-style globs against the full path, the
// basename, and (for directory patterns like "vendor/*") any path prefix.
func matchSkipPattern(pattern, filename string) bool {
	if ok, _ := path.Match(pattern, filename); ok {
		return true
	}
	if ok, _ := path.Match(pattern, path.Base(filename)); ok {
		return true
	}

	// "vendor/*" should also catch deeply nested paths and mid-path
	// directories like "pkg/vendor/x.go".
	if dir, cut := strings.CutSuffix(pattern, "/*"); cut {
		if filename == dir ||
			strings.HasPrefix(filename, dir+"/") ||
			strings.Contains(filename, "/"+dir+"/") {
			return true
		}
	}

	return false
}
