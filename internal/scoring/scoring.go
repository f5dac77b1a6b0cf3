// Package scoring turns analysis signals into quarter-band component scores.
//
// Every score starts from Base, is adjusted by the rules of its axis, then
// clamped to [MinBand, MaxBand] and rounded to the nearest quarter band.
// Scoring is a pure function of Inputs.
package scoring

import (
	"math"
)

const (
	// Base is the starting value of every component score
	Base = 6.5

	MinBand = 0.0
	MaxBand = 9.0

	// ParagraphBonusCap is the highest task achievement the paragraph
	// bonus can reach
	ParagraphBonusCap = 7.0

	// LongSentenceWords and ShortSentenceWords bound the sentence-variety
	// bonus: one sentence above the first and one below the second
	LongSentenceWords  = 30
	ShortSentenceWords = 6
)

// wordTier maps an upper word-count bound (tuned for the extended category)
// to a task achievement score
type wordTier struct {
	limit     int
	inclusive bool
	score     float64
}

var wordTiers = []wordTier{
	{limit: 180, score: 5.0},
	{limit: 240, score: 6.0},
	{limit: 320, inclusive: true, score: 7.0},
	{limit: 420, inclusive: true, score: 6.75},
}

// Inputs are the aggregated signals the scorer consumes
type Inputs struct {
	Task Task

	Words      int
	Paragraphs int
	// SentenceLengths holds the word count of every sentence, in order
	SentenceLengths []int

	ComplexWords      int
	AverageWordLength float64

	Fragments int
	RunOns    int
	Passive   int
	Active    int

	TypeTokenRatio float64
	AcademicWords  int
	Collocations   int
}

// BandResult holds the four component scores and the overall band
type BandResult struct {
	TaskAchievement   float64 `json:"taskAchievement"`
	CoherenceCohesion float64 `json:"coherenceCohesion"`
	LexicalResource   float64 `json:"lexicalResource"`
	GrammaticalRange  float64 `json:"grammaticalRange"`
	Overall           float64 `json:"overall"`
}

// Score computes the band result for in
func Score(in Inputs) BandResult {
	r := BandResult{
		TaskAchievement:   Quantize(TaskAchievement(in)),
		CoherenceCohesion: Quantize(CoherenceCohesion(in)),
		LexicalResource:   Quantize(LexicalResource(in)),
		GrammaticalRange:  Quantize(GrammaticalRange(in)),
	}
	r.Overall = Quantize((r.TaskAchievement + r.CoherenceCohesion + r.LexicalResource + r.GrammaticalRange) / 4)
	return r
}

// Quantize clamps x to the band range and rounds it to the nearest 0.25
func Quantize(x float64) float64 {
	x = math.Max(MinBand, math.Min(MaxBand, x))
	return math.Round(x*4) / 4
}

// TaskAchievement scores length against the category thresholds. Empty
// text keeps the base score; the paragraph bonus never lifts the score
// above ParagraphBonusCap.
func TaskAchievement(in Inputs) float64 {
	score := Base
	if in.Words > 0 {
		score = tierScore(in.Words, in.Task)
	}
	if in.Paragraphs >= 4 && score < ParagraphBonusCap {
		score = math.Min(ParagraphBonusCap, score+0.25)
	}
	return score
}

// tierScore looks up the word tier, scaling the thresholds by the ratio of
// the category minimum to the extended minimum
func tierScore(words int, task Task) float64 {
	for _, tier := range wordTiers {
		limit := tier.limit * task.MinWords() / Extended.MinWords()
		if words < limit || (tier.inclusive && words == limit) {
			return tier.score
		}
	}
	return Base
}

// CoherenceCohesion rewards sentence variety and stock cohesive phrases and
// penalizes structural defects
func CoherenceCohesion(in Inputs) float64 {
	score := Base
	if hasSentenceVariety(in.SentenceLengths) {
		score += 0.5
	}
	score -= math.Min(1.5, 0.3*float64(in.RunOns)+0.2*float64(in.Fragments))
	if in.Collocations >= 3 {
		score += 0.25
	}
	return score
}

func hasSentenceVariety(lengths []int) bool {
	var long, short bool
	for _, n := range lengths {
		if n > LongSentenceWords {
			long = true
		}
		if n < ShortSentenceWords {
			short = true
		}
	}
	return long && short
}

// LexicalResource rewards diversity, long words and academic vocabulary
func LexicalResource(in Inputs) float64 {
	score := Base
	switch {
	case in.TypeTokenRatio > 0.5:
		score += 0.5
	case in.TypeTokenRatio > 0.4:
		score += 0.25
	}
	if ratio(in.ComplexWords, in.Words) > 0.18 {
		score += 0.25
	}
	score += math.Min(0.5, 0.1*float64(in.AcademicWords))
	return score
}

// GrammaticalRange penalizes defects and heavy passive use and rewards a
// mostly active style with longer words
func GrammaticalRange(in Inputs) float64 {
	score := Base
	score -= math.Min(1.5, 0.2*float64(in.Fragments)+0.3*float64(in.RunOns))

	passiveRate := PassiveRate(in.Passive, len(in.SentenceLengths))
	if passiveRate > 0.6 {
		score -= 0.5
	}
	if passiveRate < 0.15 && in.Active > 0 {
		score += 0.25
	}
	if in.AverageWordLength >= 4.8 {
		score += 0.25
	}
	return score
}

// PassiveRate is passive sentences over all sentences, 0 without sentences
func PassiveRate(passive, sentences int) float64 {
	return ratio(passive, sentences)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
