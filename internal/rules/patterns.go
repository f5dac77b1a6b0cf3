package rules

import (
	"regexp"
	"strings"
)

// WordPattern compiles a case-insensitive whole-word alternation of words.
// Entries that contain spaces match across any run of whitespace.
func WordPattern(words []string) *regexp.Regexp {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		parts := strings.Fields(w)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}
	if len(alts) == 0 {
		// never matches
		return regexp.MustCompile(`[^\s\S]`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// contractionPattern matches contraction suffixes after a straight or curly
// apostrophe: "I'm", "they’re", "it's".
func contractionPattern(suffixes []string) *regexp.Regexp {
	if len(suffixes) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}
	quoted := make([]string, len(suffixes))
	for i, s := range suffixes {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(?i)['’](?:` + strings.Join(quoted, "|") + `)\b`)
}
