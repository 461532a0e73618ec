package review

import (
	"path"
	"sort"
	"strings"
)

// GroupFiles partitions reviewable files into bounded groups for independent
// review passes. Files are bucketed by a directory/extension-derived key so
// architecturally related files travel together, then greedily packed until
// the file count or cumulative patch size would exceed the limits.
//
// The partition is deterministic: buckets are walked in sorted key order and
// files keep their input order inside a bucket. A single file bigger than
// maxGroupChars still gets its own singleton group; exclusion only ever
// happens in FilterFiles.
func GroupFiles(files []ChangedFile, maxGroupChars, maxGroupFiles int) []FileGroup {
	if len(files) == 0 {
		return nil
	}
	if maxGroupFiles <= 0 {
		maxGroupFiles = 1
	}

	buckets := make(map[string][]ChangedFile)
	for _, f := range files {
		key := groupKey(f.Filename)
		buckets[key] = append(buckets[key], f)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var groups []FileGroup
	for _, key := range keys {
		current := FileGroup{Key: key}
		for _, f := range buckets[key] {
			size := len(f.Patch)

			overChars := current.TotalChars+size > maxGroupChars
			overFiles := len(current.Files) >= maxGroupFiles
			if len(current.Files) > 0 && (overChars || overFiles) {
				groups = append(groups, current)
				current = FileGroup{Key: key}
			}

			current.Files = append(current.Files, f)
			current.TotalChars += size
		}
		if len(current.Files) > 0 {
			groups = append(groups, current)
		}
	}

	return groups
}

// groupKey derives a bucketing key that keeps related files in the same
// review pass: test files together, top-level directory otherwise, falling
// back to the file extension for root-level files.
func groupKey(filename string) string {
	base := path.Base(filename)

	if strings.HasSuffix(base, "_test.go") ||
		strings.HasSuffix(base, "_test.py") ||
		strings.HasSuffix(base, ".test.js") ||
		strings.HasSuffix(base, ".test.ts") ||
		strings.HasSuffix(base, ".spec.js") ||
		strings.HasSuffix(base, ".spec.ts") ||
		strings.Contains(filename, "__tests__/") {
		return "tests"
	}

	dir := path.Dir(filename)
	if dir != "." {
		// Top-level directory keeps sibling packages together.
		return strings.SplitN(dir, "/", 2)[0]
	}

	if ext := path.Ext(base); ext != "" {
		return ext
	}
	return "other"
}
