// Package lexicon holds the fixed word and phrase lists the analyzers match
// against. Lists are data, not code: the builtin lexicon is embedded YAML and
// callers may supply their own file with the same shape.
package lexicon

import (
	"fmt"
	"strings"
)

// Lexicon is a named set of word lists used by the analysis rules.
// A Lexicon is read-only once compiled and safe for concurrent use.
type Lexicon struct {
	// Name identifies the lexicon (e.g., "default")
	Name string `yaml:"name"`

	// FiniteVerbs are auxiliary/modal/copula forms marking a finite clause.
	// Entries starting with an apostrophe are contraction suffixes.
	FiniteVerbs []string `yaml:"finite_verbs"`

	// Coordinators are the coordinating conjunctions
	Coordinators []string `yaml:"coordinators"`

	// BeForms are the forms of "to be" that open a passive construction
	BeForms []string `yaml:"be_forms"`

	// Participles are irregular past participles not caught by suffix rules
	Participles []string `yaml:"irregular_participles"`

	// Subjects are canonical sentence-opening subjects for active voice
	Subjects []string `yaml:"subjects"`

	// AcademicWords are transition and academic vocabulary entries
	AcademicWords []string `yaml:"academic_words"`

	// Collocations are stock cohesive multi-word phrases
	Collocations []string `yaml:"collocations"`

	// Examples are the canned before/after rewrites used in feedback
	Examples Examples `yaml:"examples"`

	finiteVerbs  map[string]bool
	coordinators map[string]bool
	beForms      map[string]bool
	participles  map[string]bool
	subjects     map[string]bool
	academic     map[string]bool
}

// Example is a literal before/after rewrite.
type Example struct {
	Before string `yaml:"before" json:"before"`
	After  string `yaml:"after" json:"after"`
}

// Examples groups canned rewrites by the problem they illustrate.
type Examples struct {
	RunOn    []Example `yaml:"run_on"`
	Fragment []Example `yaml:"fragment"`
	Passive  []Example `yaml:"passive"`
	Lexical  []Example `yaml:"lexical"`
}

// ValidationError reports a lexicon list that is missing or empty.
type ValidationError struct {
	Lexicon string
	Field   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lexicon %q: %s must not be empty", e.Lexicon, e.Field)
}

// Validate checks that every list a rule depends on is present.
func (l *Lexicon) Validate() error {
	required := []struct {
		field string
		list  []string
	}{
		{"finite_verbs", l.FiniteVerbs},
		{"coordinators", l.Coordinators},
		{"be_forms", l.BeForms},
		{"subjects", l.Subjects},
		{"academic_words", l.AcademicWords},
		{"collocations", l.Collocations},
	}
	for _, r := range required {
		if len(r.list) == 0 {
			return &ValidationError{Lexicon: l.Name, Field: r.field}
		}
	}
	return nil
}

// compile builds the lowercase lookup sets. It is called once by the loader
// before the lexicon is handed out.
func (l *Lexicon) compile() {
	l.finiteVerbs = toSet(l.FiniteVerbs)
	l.coordinators = toSet(l.Coordinators)
	l.beForms = toSet(l.BeForms)
	l.participles = toSet(l.Participles)
	l.subjects = toSet(l.Subjects)
	l.academic = toSet(l.AcademicWords)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return set
}

// IsFiniteVerb reports whether word is a finite-verb marker.
func (l *Lexicon) IsFiniteVerb(word string) bool {
	return l.finiteVerbs[strings.ToLower(word)]
}

// IsCoordinator reports whether word is a coordinating conjunction.
func (l *Lexicon) IsCoordinator(word string) bool {
	return l.coordinators[strings.ToLower(word)]
}

// IsBeForm reports whether word is a form of "to be".
func (l *Lexicon) IsBeForm(word string) bool {
	return l.beForms[strings.ToLower(word)]
}

// IsParticiple reports whether word is a listed irregular past participle.
func (l *Lexicon) IsParticiple(word string) bool {
	return l.participles[strings.ToLower(word)]
}

// IsSubject reports whether word is a canonical sentence subject.
func (l *Lexicon) IsSubject(word string) bool {
	return l.subjects[strings.ToLower(word)]
}

// IsAcademic reports whether word is in the academic word list.
func (l *Lexicon) IsAcademic(word string) bool {
	return l.academic[strings.ToLower(word)]
}

// Contractions returns the contraction suffixes from FiniteVerbs without
// their leading apostrophe ("'re" -> "re").
func (l *Lexicon) Contractions() []string {
	var out []string
	for _, v := range l.FiniteVerbs {
		v = strings.ToLower(strings.TrimSpace(v))
		if strings.HasPrefix(v, "'") && len(v) > 1 {
			out = append(out, v[1:])
		}
	}
	return out
}

// FiniteWords returns the finite verbs that are whole words (no contractions).
func (l *Lexicon) FiniteWords() []string {
	var out []string
	for _, v := range l.FiniteVerbs {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && !strings.HasPrefix(v, "'") {
			out = append(out, v)
		}
	}
	return out
}
