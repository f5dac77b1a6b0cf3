package rules

import (
	"github.com/pthm/bandlint/internal/lexicon"
)

// Registry holds all registered rules
type Registry struct {
	rules    []Rule
	document []DocumentRule
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules: make([]Rule, 0),
	}
}

// Register adds a sentence rule to the registry
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// RegisterDocument adds a document rule to the registry
func (r *Registry) RegisterDocument(rule DocumentRule) {
	r.document = append(r.document, rule)
}

// Rules returns the sentence rules in a category, in registration order
func (r *Registry) Rules(category Category) []Rule {
	var result []Rule
	for _, rule := range r.rules {
		if rule.Config().Category == category {
			result = append(result, rule)
		}
	}
	return result
}

// DocumentRules returns all document rules in registration order
func (r *Registry) DocumentRules() []DocumentRule {
	return r.document
}

// DefaultRegistry returns a registry with all default rules built from lex
func DefaultRegistry(lex *lexicon.Lexicon) *Registry {
	r := NewRegistry()

	// Structural rules
	r.Register(NewFragmentRule(lex))
	r.Register(NewRunOnRule(lex))

	// Voice rules
	r.Register(NewPassiveRule(lex))
	r.Register(NewActiveRule(lex))

	// Mechanics (reported only)
	r.RegisterDocument(&RepeatedWordsRule{})
	for _, mp := range mechanicsPatterns {
		r.RegisterDocument(mp)
	}

	return r
}
