package rules

import (
	"github.com/pthm/bandlint/internal/text"
)

// Severity represents the severity level of an issue
type Severity int

const (
	Info Severity = iota
	Suggestion
	Warning
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Suggestion:
		return "suggestion"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind identifies what a sentence flag marks
type Kind int

const (
	KindFragment Kind = iota
	KindRunOn
	KindPassive
	KindActive
)

func (k Kind) String() string {
	switch k {
	case KindFragment:
		return "fragment"
	case KindRunOn:
		return "run-on"
	case KindPassive:
		return "passive"
	case KindActive:
		return "active"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category groups rules by the analyzer that runs them
type Category int

const (
	// CategoryStructure is for fragment and run-on detection
	CategoryStructure Category = iota
	// CategoryVoice is for passive and active voice detection
	CategoryVoice
)

func (c Category) String() string {
	switch c {
	case CategoryStructure:
		return "structure"
	case CategoryVoice:
		return "voice"
	default:
		return "unknown"
	}
}

// Flag identifies a sentence matched by a rule. Index refers to the
// sentence sequence produced by text.SplitSentences for the same input.
type Flag struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Kind  Kind   `json:"kind"`
}

// Issue is a document-level finding that is reported but not scored
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Count    int      `json:"count"`
}

// RuleConfig defines how a sentence rule is grouped and what it flags
type RuleConfig struct {
	Category Category
	Kind     Kind
}

// Rule is a named predicate over a single sentence
type Rule interface {
	// Name returns the unique identifier for this rule
	Name() string

	// Description returns a human-readable description
	Description() string

	// Config returns the rule's grouping and flag kind
	Config() RuleConfig

	// Match reports whether the sentence exhibits the rule's pattern
	Match(s text.Sentence) bool
}

// DocumentRule checks the raw text as a whole
type DocumentRule interface {
	Name() string
	Description() string

	// Run returns any issues found; rules with nothing to report return nil
	Run(doc *text.Document) []Issue
}

// Edit replaces raw[Start:End] (Old) with New
type Edit struct {
	Rule  string
	Start int
	End   int
	Old   string
	New   string
}

// FixableRule is a document rule that can correct what it reports. Edits
// are returned in ascending order and do not overlap.
type FixableRule interface {
	DocumentRule
	Fixes(raw string) []Edit
}

// Apply runs rule over sentences and returns a flag for every match, in
// sentence order.
func Apply(rule Rule, sentences []text.Sentence) []Flag {
	kind := rule.Config().Kind
	var flags []Flag
	for _, s := range sentences {
		if rule.Match(s) {
			flags = append(flags, Flag{Index: s.Index, Text: s.Text, Kind: kind})
		}
	}
	return flags
}
