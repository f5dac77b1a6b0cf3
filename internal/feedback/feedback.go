// Package feedback turns analysis signals into ordered advisory text.
package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm/bandlint/internal/analyzer"
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/text"
)

const (
	// MaxItems caps the generated list
	MaxItems = 10
	// MaxCited is how many sentence numbers a message names
	MaxCited = 3
	// MaxExamples is how many canned rewrites follow a defect message
	MaxExamples = 2

	PassiveRateLimit  = 0.5
	MinTypeTokenRatio = 0.42
	MinCollocations   = 2
)

// Item is one piece of advice, optionally a literal before/after rewrite
type Item struct {
	Message string           `json:"message"`
	Example *lexicon.Example `json:"example,omitempty"`
}

func (i Item) String() string {
	if i.Example == nil {
		return i.Message
	}
	return fmt.Sprintf("%s: %q -> %q", i.Message, i.Example.Before, i.Example.After)
}

// Strings renders items in order
func Strings(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

// Generator produces feedback using a fixed set of canned examples
type Generator struct {
	examples lexicon.Examples
}

// New creates a generator drawing examples from lex
func New(lex *lexicon.Lexicon) *Generator {
	return &Generator{examples: lex.Examples}
}

// Generate evaluates the feedback rules in order and returns at most
// MaxItems items
func (g *Generator) Generate(task scoring.Task, doc *text.Document, f *analyzer.Features) []Item {
	var items []Item
	add := func(format string, args ...any) {
		items = append(items, Item{Message: fmt.Sprintf(format, args...)})
	}

	if words := doc.WordCount(); words < task.MinWords() {
		add("Your response has %d words; %s responses need at least %d (ideally around %d). Expand your ideas with more details and examples.",
			words, task, task.MinWords(), task.IdealWords())
	}

	if runOns := f.Structure.RunOns; len(runOns) > 0 {
		add("Possible run-on %s. Join clauses with a subordinating conjunction (because, although, which) or split them into separate sentences.",
			cite(runOns))
		items = appendExamples(items, "Run-on fix", g.examples.RunOn)
	}

	if fragments := f.Structure.Fragments; len(fragments) > 0 {
		add("Possible fragment %s. Make sure every sentence has a subject and a finite verb.",
			cite(fragments))
		items = appendExamples(items, "Fragment fix", g.examples.Fragment)
	}

	passive := len(f.Voice.Passive)
	if scoring.PassiveRate(passive, doc.SentenceCount()) > PassiveRateLimit {
		add("Passive voice appears in %d of %d sentences. Prefer active constructions that name who does what.",
			passive, doc.SentenceCount())
		items = appendExamples(items, "Active voice", g.examples.Passive)
	}

	if ttr := f.Vocabulary.TypeTokenRatio; ttr < MinTypeTokenRatio {
		add("Vocabulary is repetitive (type-token ratio %.2f). Vary word choice with synonyms and more precise terms.", ttr)
	}

	if f.Vocabulary.CollocationCount < MinCollocations {
		add("Link ideas with cohesive phrases such as \"as a result\", \"on the other hand\" or \"in contrast\".")
	}
	items = appendExamples(items, "Lexical upgrade", g.examples.Lexical)

	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}

// Strengths lists what the response already does well
func (g *Generator) Strengths(task scoring.Task, doc *text.Document, f *analyzer.Features) []string {
	var out []string
	words := doc.WordCount()

	if words >= task.MinWords() {
		out = append(out, fmt.Sprintf("Good word count: %d words", words))
	}
	if doc.Paragraphs >= 4 {
		out = append(out, "Well-organized paragraph structure")
	}
	if f.Vocabulary.CollocationCount >= 3 || f.Vocabulary.AcademicWordCount >= 5 {
		out = append(out, "Good use of cohesive devices and linking words")
	}
	if f.Vocabulary.TypeTokenRatio > 0.5 {
		out = append(out, "Good range of vocabulary")
	}
	if avg := doc.AverageSentenceLength(); avg >= 15 && avg <= 25 {
		out = append(out, "Good sentence length variety")
	}
	if words > 0 && len(f.Mechanics) == 0 {
		out = append(out, "No obvious grammar or punctuation errors detected")
	}
	return out
}

func appendExamples(items []Item, label string, examples []lexicon.Example) []Item {
	for i := 0; i < len(examples) && i < MaxExamples; i++ {
		ex := examples[i]
		items = append(items, Item{Message: label, Example: &ex})
	}
	return items
}

// cite names the first MaxCited flagged sentences, numbered from 1
func cite(flags []rules.Flag) string {
	var nums []string
	for i, f := range flags {
		if i == MaxCited {
			break
		}
		nums = append(nums, strconv.Itoa(f.Index+1))
	}

	noun := "in sentence "
	if len(flags) > 1 {
		noun = "in sentences "
	}
	s := noun + strings.Join(nums, ", ")
	if extra := len(flags) - MaxCited; extra > 0 {
		s += fmt.Sprintf(" (and %d more)", extra)
	}
	return s
}
