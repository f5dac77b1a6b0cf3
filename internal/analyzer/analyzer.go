// Package analyzer runs the sentence rules and vocabulary metrics over a
// segmented document. Each analyzer returns a fresh value and never mutates
// its input.
package analyzer

import (
	"regexp"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/text"
)

// Structure holds the structural defect flags for a document
type Structure struct {
	Fragments []rules.Flag
	RunOns    []rules.Flag
}

// Voice holds the voice flags for a document. A sentence may appear in both
// lists.
type Voice struct {
	Passive []rules.Flag
	Active  []rules.Flag
}

// Features is everything the analyzers derive from one document
type Features struct {
	Structure  Structure
	Voice      Voice
	Vocabulary Vocabulary
	Mechanics  []rules.Issue
}

// Analyzer binds a lexicon and its rule registry. It holds no per-call
// state and is safe for concurrent use.
type Analyzer struct {
	lex          *lexicon.Lexicon
	registry     *rules.Registry
	collocations *regexp.Regexp
}

// New creates an analyzer with the default rules built from lex
func New(lex *lexicon.Lexicon) *Analyzer {
	return NewWithRegistry(lex, rules.DefaultRegistry(lex))
}

// NewWithRegistry creates an analyzer that runs the rules in registry
func NewWithRegistry(lex *lexicon.Lexicon, registry *rules.Registry) *Analyzer {
	return &Analyzer{
		lex:          lex,
		registry:     registry,
		collocations: rules.WordPattern(lex.Collocations),
	}
}

// Lexicon returns the lexicon the analyzer was built with
func (a *Analyzer) Lexicon() *lexicon.Lexicon {
	return a.lex
}

// Analyze runs every analyzer over doc
func (a *Analyzer) Analyze(doc *text.Document) *Features {
	return &Features{
		Structure:  a.Structure(doc.Sentences),
		Voice:      a.Voice(doc.Sentences),
		Vocabulary: a.Vocabulary(doc),
		Mechanics:  a.Mechanics(doc),
	}
}

// Structure flags fragments and run-ons
func (a *Analyzer) Structure(sentences []text.Sentence) Structure {
	byKind := a.run(rules.CategoryStructure, sentences)
	return Structure{
		Fragments: byKind[rules.KindFragment],
		RunOns:    byKind[rules.KindRunOn],
	}
}

// Voice flags passive and active sentences
func (a *Analyzer) Voice(sentences []text.Sentence) Voice {
	byKind := a.run(rules.CategoryVoice, sentences)
	return Voice{
		Passive: byKind[rules.KindPassive],
		Active:  byKind[rules.KindActive],
	}
}

// Mechanics runs the document rules
func (a *Analyzer) Mechanics(doc *text.Document) []rules.Issue {
	var issues []rules.Issue
	for _, rule := range a.registry.DocumentRules() {
		issues = append(issues, rule.Run(doc)...)
	}
	return issues
}

func (a *Analyzer) run(category rules.Category, sentences []text.Sentence) map[rules.Kind][]rules.Flag {
	byKind := make(map[rules.Kind][]rules.Flag)
	for _, rule := range a.registry.Rules(category) {
		kind := rule.Config().Kind
		byKind[kind] = append(byKind[kind], rules.Apply(rule, sentences)...)
	}
	return byKind
}
