package rules

import (
	"strings"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/text"
)

// participleSuffixes are the regular past participle endings
var participleSuffixes = []string{"ed", "en", "n"}

// PassiveRule flags a be-form immediately followed by a past participle
type PassiveRule struct {
	lex *lexicon.Lexicon
}

// NewPassiveRule creates a passive-voice rule backed by lex
func NewPassiveRule(lex *lexicon.Lexicon) *PassiveRule {
	return &PassiveRule{lex: lex}
}

func (r *PassiveRule) Name() string {
	return "passive-voice"
}

func (r *PassiveRule) Description() string {
	return "Flags sentences using a form of 'to be' followed by a past participle"
}

func (r *PassiveRule) Config() RuleConfig {
	return RuleConfig{Category: CategoryVoice, Kind: KindPassive}
}

func (r *PassiveRule) Match(s text.Sentence) bool {
	for i := 0; i+1 < len(s.Tokens); i++ {
		if r.lex.IsBeForm(s.Tokens[i].Lower) && r.IsParticiple(s.Tokens[i+1].Lower) {
			return true
		}
	}
	return false
}

// IsParticiple reports whether word looks like a past participle
func (r *PassiveRule) IsParticiple(word string) bool {
	word = strings.ToLower(word)
	if r.lex.IsParticiple(word) {
		return true
	}
	for _, suffix := range participleSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}
