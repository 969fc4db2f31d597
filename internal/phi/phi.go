// Package phi flags text that looks like protected health information.
// Matches are advisory: the caller shows a warning, nothing is blocked.
package phi

import "regexp"

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(MRN|medical record)\b`),
	regexp.MustCompile(`(?i)\bDOB\b`),
	regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`),
	regexp.MustCompile(`(?i)\broom\s?#?\d+\b`),
	regexp.MustCompile(`(?i)\bbed\s?#?\d+\b`),
}

// Likely reports whether text matches any PHI heuristic. Empty text never
// matches.
func Likely(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
