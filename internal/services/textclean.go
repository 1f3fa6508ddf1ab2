package services

import (
	"strings"
	"unicode"
)

// Default learning-point length bounds, in runes.
const (
	MinLearningPointLength = 30
	MaxLearningPointLength = 300
)

// CleanAndSplit filters raw extracted text into learning-point candidates.
// Purely deterministic: sentence-ish splitting, then drop short lines,
// header-like all-caps lines, and lines dominated by special characters.
// Over-long lines are truncated with an ellipsis marker. Order is the order
// of appearance in the source; duplicates are kept.
func CleanAndSplit(text string, minLength, maxLength int) []string {
	// Break after sentence ends, then split on line breaks.
	lines := strings.Split(strings.ReplaceAll(text, ". ", ".\n"), "\n")

	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		runes := []rune(line)

		if len(runes) < minLength {
			continue
		}

		// Likely page headers/footers
		if isAllUpper(line) && len(runes) < 50 {
			continue
		}

		// Likely tables or symbol noise
		special := 0
		for _, r := range runes {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				special++
			}
		}
		if float64(special)/float64(len(runes)) > 0.3 {
			continue
		}

		// Truncated lines stay within maxLength, ellipsis included.
		if len(runes) > maxLength {
			line = string(runes[:maxLength-3]) + "..."
		}

		cleaned = append(cleaned, line)
	}

	return cleaned
}

// isAllUpper reports whether s contains at least one cased rune and no
// lower-case ones.
func isAllUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
