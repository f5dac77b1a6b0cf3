// Package engine runs the full evaluation pipeline over one text: segment,
// analyze, score, then generate feedback. Each stage consumes the previous
// stage's output and nothing is shared between calls.
package engine

import (
	"github.com/pthm/bandlint/internal/analyzer"
	"github.com/pthm/bandlint/internal/feedback"
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/text"
)

// Counts are the segment counts of a text
type Counts struct {
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
	Paragraphs int `json:"paragraphs"`
}

// Features are the per-text signals the scores are derived from
type Features struct {
	AverageSentenceLength float64             `json:"averageSentenceLength"`
	AverageWordLength     float64             `json:"averageWordLength"`
	ComplexWordCount      int                 `json:"complexWordCount"`
	Fragments             []rules.Flag        `json:"fragments"`
	RunOns                []rules.Flag        `json:"runOns"`
	Passive               []rules.Flag        `json:"passive"`
	Active                []rules.Flag        `json:"active"`
	Vocabulary            analyzer.Vocabulary `json:"vocabulary"`
	Mechanics             []rules.Issue       `json:"mechanics"`
}

// Result is the complete evaluation of one text
type Result struct {
	Task       scoring.Task       `json:"taskType"`
	Counts     Counts             `json:"counts"`
	Features   Features           `json:"features"`
	BandScores scoring.BandResult `json:"bandScores"`
	Feedback   []string           `json:"feedback"`
	Strengths  []string           `json:"strengths"`

	// Items is Feedback with the canned examples kept structured
	Items []feedback.Item `json:"-"`
	// Document is the segmented input the flag indices refer to
	Document *text.Document `json:"-"`
}

// Engine evaluates texts against one lexicon. It holds only read-only
// configuration and is safe for concurrent use.
type Engine struct {
	analyzer *analyzer.Analyzer
	feedback *feedback.Generator
}

// New creates an engine backed by lex
func New(lex *lexicon.Lexicon) *Engine {
	return &Engine{
		analyzer: analyzer.New(lex),
		feedback: feedback.New(lex),
	}
}

// Default creates an engine backed by the builtin lexicon
func Default() *Engine {
	return New(lexicon.Default())
}

// Lexicon returns the lexicon the engine was built with
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.analyzer.Lexicon()
}

// Evaluate scores raw for the given task category. Empty text is valid and
// yields zero counts.
func (e *Engine) Evaluate(raw string, task scoring.Task) *Result {
	doc := text.Segment(raw)
	f := e.analyzer.Analyze(doc)

	bands := scoring.Score(Inputs(task, doc, f))
	items := e.feedback.Generate(task, doc, f)

	return &Result{
		Task: task,
		Counts: Counts{
			Words:      doc.WordCount(),
			Sentences:  doc.SentenceCount(),
			Paragraphs: doc.Paragraphs,
		},
		Features: Features{
			AverageSentenceLength: doc.AverageSentenceLength(),
			AverageWordLength:     doc.AverageWordLength(),
			ComplexWordCount:      doc.ComplexWordCount(),
			Fragments:             orEmpty(f.Structure.Fragments),
			RunOns:                orEmpty(f.Structure.RunOns),
			Passive:               orEmpty(f.Voice.Passive),
			Active:                orEmpty(f.Voice.Active),
			Vocabulary:            f.Vocabulary,
			Mechanics:             orEmpty(f.Mechanics),
		},
		BandScores: bands,
		Feedback:   feedback.Strings(items),
		Strengths:  orEmpty(e.feedback.Strengths(task, doc, f)),
		Items:      items,
		Document:   doc,
	}
}

// Inputs collects the scorer inputs from a segmented document and its
// features
func Inputs(task scoring.Task, doc *text.Document, f *analyzer.Features) scoring.Inputs {
	lengths := make([]int, len(doc.Sentences))
	for i, s := range doc.Sentences {
		lengths[i] = s.WordCount()
	}

	return scoring.Inputs{
		Task:              task,
		Words:             doc.WordCount(),
		Paragraphs:        doc.Paragraphs,
		SentenceLengths:   lengths,
		ComplexWords:      doc.ComplexWordCount(),
		AverageWordLength: doc.AverageWordLength(),
		Fragments:         len(f.Structure.Fragments),
		RunOns:            len(f.Structure.RunOns),
		Passive:           len(f.Voice.Passive),
		Active:            len(f.Voice.Active),
		TypeTokenRatio:    f.Vocabulary.TypeTokenRatio,
		AcademicWords:     f.Vocabulary.AcademicWordCount,
		Collocations:      f.Vocabulary.CollocationCount,
	}
}

// orEmpty keeps empty lists as [] rather than null in JSON output
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
