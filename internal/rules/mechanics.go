package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/bandlint/internal/text"
)

// mechanicsPattern is a document rule that counts regexp matches. fix
// returns the edit correcting one match.
type mechanicsPattern struct {
	name        string
	description string
	pattern     *regexp.Regexp
	message     string
	fix         func(raw string, start, end int) Edit
}

var mechanicsPatterns = []*mechanicsPattern{
	{
		name:        "lowercase-start",
		description: "Checks for sentences starting with a lowercase letter",
		pattern:     regexp.MustCompile(`[.!?]\s+[a-z]`),
		message:     "Sentences starting with lowercase: %d",
		fix: func(raw string, _, end int) Edit {
			r, size := utf8.DecodeLastRuneInString(raw[:end])
			return Edit{Start: end - size, End: end, Old: string(r), New: string(unicode.ToUpper(r))}
		},
	},
	{
		name:        "missing-space",
		description: "Checks for missing spaces after commas, semicolons and colons",
		pattern:     regexp.MustCompile(`[,;:][A-Za-z]`),
		message:     "Missing spaces after punctuation: %d",
		fix: func(_ string, start, _ int) Edit {
			return Edit{Start: start + 1, End: start + 1, New: " "}
		},
	},
}

func (r *mechanicsPattern) Name() string {
	return r.name
}

func (r *mechanicsPattern) Description() string {
	return r.description
}

func (r *mechanicsPattern) Fixes(raw string) []Edit {
	var edits []Edit
	for _, m := range r.pattern.FindAllStringIndex(raw, -1) {
		e := r.fix(raw, m[0], m[1])
		e.Rule = r.name
		edits = append(edits, e)
	}
	return edits
}

func (r *mechanicsPattern) Run(doc *text.Document) []Issue {
	count := len(r.pattern.FindAllStringIndex(doc.Raw, -1))
	if count == 0 {
		return nil
	}
	return []Issue{{
		Rule:     r.name,
		Severity: Suggestion,
		Message:  fmt.Sprintf(r.message, count),
		Count:    count,
	}}
}

// RepeatedWordsRule flags the same word written twice in a row ("the the")
type RepeatedWordsRule struct{}

func (r *RepeatedWordsRule) Name() string {
	return "repeated-words"
}

func (r *RepeatedWordsRule) Description() string {
	return "Checks for accidentally repeated adjacent words"
}

func (r *RepeatedWordsRule) Run(doc *text.Document) []Issue {
	count := len(repeatedWords(doc.Raw))
	if count == 0 {
		return nil
	}
	return []Issue{{
		Rule:     r.Name(),
		Severity: Suggestion,
		Message:  fmt.Sprintf("Repeated words detected: %d instances", count),
		Count:    count,
	}}
}

// Fixes deletes the second word of each pair. Pairs where the second word
// opens with a quote or bracket are left alone.
func (r *RepeatedWordsRule) Fixes(raw string) []Edit {
	var edits []Edit
	for _, rep := range repeatedWords(raw) {
		if rep.lead > 0 {
			continue
		}
		edits = append(edits, Edit{
			Rule:  r.Name(),
			Start: rep.prevEnd,
			End:   rep.wordEnd,
			Old:   raw[rep.prevEnd:rep.wordEnd],
		})
	}
	return edits
}

// repetition locates a repeated word: the end of the first occurrence, the
// end of the second one without trailing punctuation, and how many opening
// quote or bracket bytes precede the second one
type repetition struct {
	prevEnd int
	wordEnd int
	lead    int
}

const wordTrim = `"'()[]{}`

var fieldPattern = regexp.MustCompile(`\S+`)

func repeatedWords(raw string) []repetition {
	var (
		reps    []repetition
		prev    string
		prevEnd int
	)
	for _, loc := range fieldPattern.FindAllStringIndex(raw, -1) {
		field := raw[loc[0]:loc[1]]
		trimmed := strings.Trim(field, wordTrim)
		bareOrig := strings.TrimRight(trimmed, ".,;:!?")
		word := strings.ToLower(trimmed)
		bare := strings.ToLower(bareOrig)
		if bare != "" && bare == prev {
			lead := len(field) - len(strings.TrimLeft(field, wordTrim))
			reps = append(reps, repetition{
				prevEnd: prevEnd,
				wordEnd: loc[0] + lead + len(bareOrig),
				lead:    lead,
			})
		}
		// trailing punctuation ends the pair
		if bare != word {
			prev = ""
		} else {
			prev = bare
		}
		prevEnd = loc[1]
	}
	return reps
}
