package analyzer

import (
	"github.com/pthm/bandlint/internal/text"
)

// Vocabulary contains lexical-diversity and sophistication metrics
type Vocabulary struct {
	TypeTokenRatio    float64 `json:"typeTokenRatio"`
	AcademicWordCount int     `json:"academicWordCount"`
	CollocationCount  int     `json:"collocationCount"`
}

// Vocabulary computes the vocabulary metrics for doc
func (a *Analyzer) Vocabulary(doc *text.Document) Vocabulary {
	return Vocabulary{
		TypeTokenRatio:    TypeTokenRatio(doc.Tokens),
		AcademicWordCount: a.academicWords(doc.Tokens),
		CollocationCount:  len(a.collocations.FindAllStringIndex(doc.Raw, -1)),
	}
}

// TypeTokenRatio is distinct lowercase tokens over total tokens, 0 when
// there are no tokens
func TypeTokenRatio(tokens []text.Token) float64 {
	if len(tokens) == 0 {
		return 0
	}
	distinct := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		distinct[tok.Lower] = true
	}
	return float64(len(distinct)) / float64(len(tokens))
}

func (a *Analyzer) academicWords(tokens []text.Token) int {
	n := 0
	for _, tok := range tokens {
		if a.lex.IsAcademic(tok.Lower) {
			n++
		}
	}
	return n
}
