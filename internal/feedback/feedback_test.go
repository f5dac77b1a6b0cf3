package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/bandlint/internal/analyzer"
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/text"
)

func generate(t *testing.T, task scoring.Task, raw string) ([]Item, []string) {
	t.Helper()
	lex := lexicon.Default()
	doc := text.Segment(raw)
	features := analyzer.New(lex).Analyze(doc)
	g := New(lex)
	return g.Generate(task, doc, features), g.Strengths(task, doc, features)
}

func TestGenerateEmpty(t *testing.T) {
	items, strengths := generate(t, scoring.Extended, "")

	require.NotEmpty(t, items)
	assert.Contains(t, items[0].Message, "0 words")
	assert.Nil(t, items[0].Example)
	assert.Empty(t, strengths)

	// closing lexical tip is unconditional
	last := items[len(items)-1]
	require.NotNil(t, last.Example)
	assert.Equal(t, "Lexical upgrade", last.Message)
}

func TestGenerateOrder(t *testing.T) {
	items, _ := generate(t, scoring.Short, "I love reading, it makes me calm. Because technology is advancing.")

	got := Strings(items)
	require.Len(t, got, 10)
	assert.True(t, strings.HasPrefix(got[0], "Your response has 11 words; short responses"))
	assert.True(t, strings.HasPrefix(got[1], "Possible run-on in sentence 1."))
	assert.True(t, strings.HasPrefix(got[2], "Run-on fix: "))
	assert.True(t, strings.HasPrefix(got[3], "Run-on fix: "))
	assert.True(t, strings.HasPrefix(got[4], "Possible fragment in sentences 1, 2."))
	assert.True(t, strings.HasPrefix(got[5], "Fragment fix: "))
	assert.True(t, strings.HasPrefix(got[6], "Fragment fix: "))
	assert.True(t, strings.HasPrefix(got[7], "Link ideas with cohesive phrases"))
	assert.True(t, strings.HasPrefix(got[8], "Lexical upgrade: "))
	assert.True(t, strings.HasPrefix(got[9], "Lexical upgrade: "))
}

func TestGenerateTruncates(t *testing.T) {
	raw := "The policy was implemented by the council, it was, sadly, ignored. " +
		"The road was built. The bridge was built. The the the the the."
	items, _ := generate(t, scoring.Extended, raw)

	assert.Len(t, items, MaxItems)
	assert.Equal(t, "Active voice", items[MaxItems-1].Message)
}

func TestGeneratePassive(t *testing.T) {
	items, _ := generate(t, scoring.Short, "The policy was implemented by the council.")

	var found bool
	for _, item := range items {
		if strings.HasPrefix(item.Message, "Passive voice appears in 1 of 1 sentences") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRunOnExample(t *testing.T) {
	items, _ := generate(t, scoring.Extended, "I love reading, it makes me calm.")

	require.GreaterOrEqual(t, len(items), 3)
	assert.Equal(t,
		`Run-on fix: "I love reading, it makes me calm." -> "I love reading because it makes me calm."`,
		items[2].String())
}

func TestCite(t *testing.T) {
	flags := func(indices ...int) []rules.Flag {
		var out []rules.Flag
		for _, i := range indices {
			out = append(out, rules.Flag{Index: i})
		}
		return out
	}

	assert.Equal(t, "in sentence 3", cite(flags(2)))
	assert.Equal(t, "in sentences 1, 2", cite(flags(0, 1)))
	assert.Equal(t, "in sentences 1, 4, 6 (and 2 more)", cite(flags(0, 3, 5, 6, 9)))
}

func TestStrengths(t *testing.T) {
	paragraph := "Moreover, governments invest heavily in public transport because commuters depend on reliable trains every single working day of the year."
	raw := strings.Repeat(paragraph+"\n\n", 4)

	_, strengths := generate(t, scoring.Extended, raw)

	assert.Contains(t, strengths, "Well-organized paragraph structure")
	assert.Contains(t, strengths, "Good sentence length variety")
	assert.Contains(t, strengths, "No obvious grammar or punctuation errors detected")
	for _, s := range strengths {
		assert.False(t, strings.HasPrefix(s, "Good word count"), "76 words is below the minimum")
	}
}
