package rules

import (
	"regexp"
	"strings"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/text"
)

// RunOnMaxWords is the length above which a comma-joined sentence without a
// coordinator is a run-on
const RunOnMaxWords = 35

var clauseSeparator = regexp.MustCompile(`[,;:]`)

// RunOnRule flags sentences that join several clauses without proper linking
type RunOnRule struct {
	MaxWords     int
	coordinators *regexp.Regexp
}

// NewRunOnRule builds the coordinator pattern from lex
func NewRunOnRule(lex *lexicon.Lexicon) *RunOnRule {
	return &RunOnRule{
		MaxWords:     RunOnMaxWords,
		coordinators: WordPattern(lex.Coordinators),
	}
}

func (r *RunOnRule) Name() string {
	return "run-on"
}

func (r *RunOnRule) Description() string {
	return "Flags sentences with comma splices or many loosely joined clauses"
}

func (r *RunOnRule) Config() RuleConfig {
	return RuleConfig{Category: CategoryStructure, Kind: KindRunOn}
}

func (r *RunOnRule) Match(s text.Sentence) bool {
	maxWords := r.MaxWords
	if maxWords == 0 {
		maxWords = RunOnMaxWords
	}

	clauses := Clauses(s.Text)
	hasCoordinator := r.coordinators.MatchString(s.Text)

	switch {
	case clauses >= 3:
		return true
	case clauses == 2 && !hasCoordinator:
		return true
	case s.WordCount() > maxWords && strings.Contains(s.Text, ",") && !hasCoordinator:
		return true
	}
	return false
}

// Clauses counts the non-empty segments of sentence split on ',', ';' and ':'
func Clauses(sentence string) int {
	n := 0
	for _, seg := range clauseSeparator.Split(sentence, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}
