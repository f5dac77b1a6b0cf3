package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/text"
)

func indices(flags []rules.Flag) []int {
	var out []int
	for _, f := range flags {
		out = append(out, f.Index)
	}
	return out
}

func TestAnalyzeStructure(t *testing.T) {
	a := New(lexicon.Default())
	doc := text.Segment("I love reading, it makes me calm. Because technology is advancing. The students are studying hard today.")

	features := a.Analyze(doc)

	assert.Equal(t, []int{0}, indices(features.Structure.RunOns))
	// sentence 0 has no finite-verb marker, sentence 1 is too short
	assert.Equal(t, []int{0, 1}, indices(features.Structure.Fragments))
	for _, f := range features.Structure.RunOns {
		assert.Equal(t, rules.KindRunOn, f.Kind)
		assert.Equal(t, doc.Sentences[f.Index].Text, f.Text)
	}
}

func TestAnalyzeVoice(t *testing.T) {
	a := New(lexicon.Default())
	doc := text.Segment("The policy was implemented by the council. Students learn faster with practice. It was built by engineers.")

	voice := a.Voice(doc.Sentences)

	assert.Equal(t, []int{0, 2}, indices(voice.Passive))
	assert.Equal(t, []int{1, 2}, indices(voice.Active))
}

func TestVocabulary(t *testing.T) {
	a := New(lexicon.Default())
	raw := "Moreover, cities grow. As a result, rents rise. On the other\nhand, wages rise too. In contrast, villages shrink; as a result villages empty."
	doc := text.Segment(raw)

	vocab := a.Vocabulary(doc)

	assert.Equal(t, 1, vocab.AcademicWordCount)
	assert.Equal(t, 4, vocab.CollocationCount)
	assert.Greater(t, vocab.TypeTokenRatio, 0.0)
	assert.LessOrEqual(t, vocab.TypeTokenRatio, 1.0)
}

func TestCollocationsAreWholePhrases(t *testing.T) {
	a := New(lexicon.Default())

	vocab := a.Vocabulary(text.Segment("Playing an important roleplay is fun, as a resultant force."))
	assert.Zero(t, vocab.CollocationCount)
}

func TestTypeTokenRatio(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"empty", "", 0},
		{"all distinct", "one two three four", 1},
		{"case folded", "The the THE cat", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TypeTokenRatio(text.Words(tt.input)), 1e-9)
		})
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	a := New(lexicon.Default())

	features := a.Analyze(text.Segment(""))

	assert.Empty(t, features.Structure.Fragments)
	assert.Empty(t, features.Structure.RunOns)
	assert.Empty(t, features.Voice.Passive)
	assert.Empty(t, features.Voice.Active)
	assert.Empty(t, features.Mechanics)
	assert.Equal(t, Vocabulary{}, features.Vocabulary)
}

func TestMechanics(t *testing.T) {
	a := New(lexicon.Default())

	issues := a.Mechanics(text.Segment("I saw the the cat. it ran,fast."))
	require.Len(t, issues, 3)
	assert.Equal(t, "repeated-words", issues[0].Rule)
	assert.Equal(t, "lowercase-start", issues[1].Rule)
	assert.Equal(t, "missing-space", issues[2].Rule)
}

func TestCustomRegistry(t *testing.T) {
	lex := lexicon.Default()
	registry := rules.NewRegistry()
	registry.Register(rules.NewPassiveRule(lex))
	a := NewWithRegistry(lex, registry)

	features := a.Analyze(text.Segment("The policy was implemented by the council."))

	assert.Len(t, features.Voice.Passive, 1)
	assert.Empty(t, features.Voice.Active)
	assert.Empty(t, features.Structure.Fragments)
	assert.Same(t, lex, a.Lexicon())
}
