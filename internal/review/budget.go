package review

// Budgeted is the result of applying a character budget to a text.
type Budgeted struct {
	Text      string
	Truncated bool
}

// truncationMarker is appended inside the budget so the reviewer knows the
// text was cut rather than ending naturally.
const truncationMarker = "\n... (truncated)"

// Truncate cuts text to at most maxChars characters, from the tail. It is
// pure and total: input at or under budget comes back unchanged, and a
// non-positive budget yields an empty result. When the text is cut, a
// truncation marker replaces the end of the kept prefix where it fits.
func Truncate(text string, maxChars int) Budgeted {
	if maxChars <= 0 {
		return Budgeted{Text: "", Truncated: text != ""}
	}
	if len(text) <= maxChars {
		return Budgeted{Text: text}
	}

	if maxChars > len(truncationMarker) {
		return Budgeted{
			Text:      text[:maxChars-len(truncationMarker)] + truncationMarker,
			Truncated: true,
		}
	}
	return Budgeted{Text: text[:maxChars], Truncated: true}
}

// BudgetFiles applies the per-file patch budget to every file, reporting
// which filenames were cut. Files are returned in input order.
func BudgetFiles(files []ChangedFile, maxPatchChars int) ([]ChangedFile, []string) {
	out := make([]ChangedFile, len(files))
	var truncated []string
	for i, f := range files {
		b := Truncate(f.Patch, maxPatchChars)
		f.Patch = b.Text
		if b.Truncated {
			truncated = append(truncated, f.Filename)
		}
		out[i] = f
	}
	return out, truncated
}
