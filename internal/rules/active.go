package rules

import (
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/text"
)

// ActiveMinVerbLength is the minimum length of the lexical word following
// the opening subject
const ActiveMinVerbLength = 3

// ActiveRule flags sentences opening with a canonical subject followed by a
// lexical (non-auxiliary) word. It is computed independently of PassiveRule,
// so a sentence can carry both flags.
type ActiveRule struct {
	lex *lexicon.Lexicon
}

// NewActiveRule creates an active-voice rule backed by lex
func NewActiveRule(lex *lexicon.Lexicon) *ActiveRule {
	return &ActiveRule{lex: lex}
}

func (r *ActiveRule) Name() string {
	return "active-voice"
}

func (r *ActiveRule) Description() string {
	return "Flags sentences that open with a clear subject and a lexical verb"
}

func (r *ActiveRule) Config() RuleConfig {
	return RuleConfig{Category: CategoryVoice, Kind: KindActive}
}

func (r *ActiveRule) Match(s text.Sentence) bool {
	if len(s.Tokens) == 0 || !r.lex.IsSubject(s.Tokens[0].Lower) {
		return false
	}
	for _, tok := range s.Tokens[1:] {
		if tok.Len < ActiveMinVerbLength {
			continue
		}
		if r.lex.IsBeForm(tok.Lower) || r.lex.IsFiniteVerb(tok.Lower) {
			continue
		}
		return true
	}
	return false
}
