package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// exportPrefix matches the "Comment 12:" prefix some survey exports put in
// front of free text
var exportPrefix = regexp.MustCompile(`(?i)^comment\s*\d*\s*:\s*`)

// fold case-folds s. Casers are stateful, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// CollapseSpace trims s and collapses inner whitespace runs to one space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key returns the comparison key of a label: case-folded and
// whitespace-collapsed
func Key(s string) string {
	return CollapseSpace(fold(s))
}

// FreeText normalizes a comment: NFKC, control characters dropped,
// whitespace collapsed and the export prefix removed
func FreeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = CollapseSpace(s)
	s = exportPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
