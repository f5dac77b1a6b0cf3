package rules

import (
	"regexp"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/text"
)

// FragmentMinWords is the word count below which a sentence is a fragment
const FragmentMinWords = 5

// FragmentRule flags sentences that are too short or lack a finite verb
type FragmentRule struct {
	MinWords     int
	finite       *regexp.Regexp
	contractions *regexp.Regexp
}

// NewFragmentRule builds the finite-verb pattern table from lex
func NewFragmentRule(lex *lexicon.Lexicon) *FragmentRule {
	return &FragmentRule{
		MinWords:     FragmentMinWords,
		finite:       WordPattern(lex.FiniteWords()),
		contractions: contractionPattern(lex.Contractions()),
	}
}

func (r *FragmentRule) Name() string {
	return "fragment"
}

func (r *FragmentRule) Description() string {
	return "Flags sentences shorter than five words or without a finite verb"
}

func (r *FragmentRule) Config() RuleConfig {
	return RuleConfig{Category: CategoryStructure, Kind: KindFragment}
}

func (r *FragmentRule) Match(s text.Sentence) bool {
	minWords := r.MinWords
	if minWords == 0 {
		minWords = FragmentMinWords
	}
	if s.WordCount() < minWords {
		return true
	}
	return !r.HasFiniteVerb(s.Text)
}

// HasFiniteVerb reports whether sentence contains a finite-verb marker
func (r *FragmentRule) HasFiniteVerb(sentence string) bool {
	return r.finite.MatchString(sentence) || r.contractions.MatchString(sentence)
}
