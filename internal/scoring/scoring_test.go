package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		input string
		want  Task
	}{
		{"short", Short},
		{"task1", Short},
		{"TASK1", Short},
		{"extended", Extended},
		{" task2 ", Extended},
		{"Extended", Extended},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTask(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTask("task3")
	assert.True(t, errors.Is(err, ErrUnknownTask))
}

func TestTaskThresholds(t *testing.T) {
	assert.Equal(t, 150, Short.MinWords())
	assert.Equal(t, 200, Short.IdealWords())
	assert.Equal(t, 250, Extended.MinWords())
	assert.Equal(t, 300, Extended.IdealWords())

	var zero Task
	assert.Equal(t, Extended, zero)
}

func TestTaskText(t *testing.T) {
	b, err := Short.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "short", string(b))

	var task Task
	require.NoError(t, task.UnmarshalText([]byte("task2")))
	assert.Equal(t, Extended, task)
	assert.Error(t, task.UnmarshalText([]byte("essay")))
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{6.5, 6.5},
		{6.1, 6.0},
		{6.125, 6.25},
		{6.37, 6.25},
		{6.38, 6.5},
		{-1, 0},
		{9.4, 9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantize(tt.in), "Quantize(%v)", tt.in)
	}
}

func TestTaskAchievementTiers(t *testing.T) {
	tests := []struct {
		name       string
		task       Task
		words      int
		paragraphs int
		want       float64
	}{
		{"empty keeps base", Extended, 0, 0, 6.5},
		{"very short", Extended, 179, 1, 5.0},
		{"under minimum", Extended, 180, 1, 6.0},
		{"ideal range low", Extended, 240, 1, 7.0},
		{"ideal range high", Extended, 320, 1, 7.0},
		{"slightly long", Extended, 321, 1, 6.75},
		{"long", Extended, 420, 1, 6.75},
		{"very long", Extended, 421, 1, 6.5},
		{"paragraph bonus", Extended, 200, 4, 6.25},
		{"paragraph bonus capped", Extended, 300, 4, 7.0},
		{"paragraph bonus reaches cap", Extended, 400, 5, 7.0},
		{"paragraph bonus past long", Extended, 430, 4, 6.75},
		{"short scaled very short", Short, 107, 1, 5.0},
		{"short scaled under minimum", Short, 108, 1, 6.0},
		{"short scaled ideal", Short, 192, 1, 7.0},
		{"short scaled slightly long", Short, 193, 1, 6.75},
		{"short scaled very long", Short, 253, 1, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaskAchievement(Inputs{Task: tt.task, Words: tt.words, Paragraphs: tt.paragraphs})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskAchievementParagraphBonusCap(t *testing.T) {
	ta := func(words, paragraphs int) float64 {
		return TaskAchievement(Inputs{Task: Extended, Words: words, Paragraphs: paragraphs})
	}

	// already at the cap, so four paragraphs add nothing
	assert.Equal(t, 7.0, ta(300, 1))
	assert.Equal(t, 7.0, ta(300, 4))

	// 6.75 + 0.25 lands exactly on the cap
	assert.Equal(t, 6.75, ta(400, 1))
	assert.Equal(t, 7.0, ta(400, 4))

	// past 420 words the tier is 6.5 and the bonus gives 6.75
	assert.Equal(t, 6.5, ta(421, 3))
	assert.Equal(t, 6.75, ta(421, 4))
	assert.Equal(t, 6.75, ta(600, 8))

	for words := 0; words <= 600; words += 5 {
		for _, task := range []Task{Short, Extended} {
			got := TaskAchievement(Inputs{Task: task, Words: words, Paragraphs: 6})
			assert.LessOrEqual(t, got, ParagraphBonusCap, "words=%d task=%s", words, task)
		}
	}
}

func TestTaskAchievementParagraphsMonotonic(t *testing.T) {
	for words := 0; words <= 500; words += 10 {
		for _, task := range []Task{Short, Extended} {
			three := TaskAchievement(Inputs{Task: task, Words: words, Paragraphs: 3})
			four := TaskAchievement(Inputs{Task: task, Words: words, Paragraphs: 4})
			assert.GreaterOrEqual(t, four, three, "words=%d task=%s", words, task)
		}
	}
}

func TestCoherenceCohesion(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"base", Inputs{SentenceLengths: []int{10, 12}}, 6.5},
		{"variety", Inputs{SentenceLengths: []int{31, 5}}, 7.0},
		{"only long", Inputs{SentenceLengths: []int{31, 10}}, 6.5},
		{"collocations", Inputs{Collocations: 3}, 6.75},
		{"defects", Inputs{RunOns: 1, Fragments: 2}, 5.8},
		{"defect penalty capped", Inputs{RunOns: 10, Fragments: 10}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CoherenceCohesion(tt.in), 1e-9)
		})
	}
}

func TestLexicalResource(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"base", Inputs{}, 6.5},
		{"high diversity", Inputs{TypeTokenRatio: 0.51}, 7.0},
		{"medium diversity", Inputs{TypeTokenRatio: 0.45}, 6.75},
		{"exactly half", Inputs{TypeTokenRatio: 0.5}, 6.75},
		{"complex words", Inputs{Words: 100, ComplexWords: 19}, 6.75},
		{"complex ratio at threshold", Inputs{Words: 100, ComplexWords: 18}, 6.5},
		{"academic words", Inputs{AcademicWords: 3}, 6.8},
		{"academic words capped", Inputs{AcademicWords: 12}, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LexicalResource(tt.in), 1e-9)
		})
	}
}

func TestGrammaticalRange(t *testing.T) {
	ten := []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"base", Inputs{}, 6.5},
		{"active style", Inputs{SentenceLengths: ten, Passive: 1, Active: 3}, 6.75},
		{"active without flags", Inputs{SentenceLengths: ten}, 6.5},
		{"heavy passive", Inputs{SentenceLengths: ten, Passive: 7}, 6.0},
		{"long words", Inputs{AverageWordLength: 4.8}, 6.75},
		{"defects", Inputs{Fragments: 1, RunOns: 1}, 6.0},
		{"defect penalty capped", Inputs{Fragments: 20}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GrammaticalRange(tt.in), 1e-9)
		})
	}
}

func TestScoreEmpty(t *testing.T) {
	got := Score(Inputs{})

	assert.Equal(t, BandResult{
		TaskAchievement:   6.5,
		CoherenceCohesion: 6.5,
		LexicalResource:   6.5,
		GrammaticalRange:  6.5,
		Overall:           6.5,
	}, got)
}

func TestScoreOverallIsQuarterMean(t *testing.T) {
	got := Score(Inputs{
		Task:            Extended,
		Words:           200,
		Paragraphs:      2,
		SentenceLengths: []int{8, 9, 10},
		RunOns:          2,
		Fragments:       1,
		TypeTokenRatio:  0.55,
		AcademicWords:   1,
	})

	assert.Equal(t, 6.0, got.TaskAchievement)
	assert.Equal(t, 5.75, got.CoherenceCohesion) // 6.5 - 0.8
	assert.Equal(t, 7.0, got.LexicalResource)   // 6.5 + 0.5 + 0.1
	assert.Equal(t, 5.75, got.GrammaticalRange) // 6.5 - 0.8
	assert.Equal(t, 6.25, got.Overall)          // mean 6.125
}

func TestScoreAlwaysQuarterBands(t *testing.T) {
	for i := 0; i < 200; i++ {
		in := Inputs{
			Task:              Task(i % 2),
			Words:             i * 3,
			Paragraphs:        i % 6,
			SentenceLengths:   []int{i % 40, (i * 7) % 9},
			ComplexWords:      i % 50,
			AverageWordLength: 3 + float64(i%30)/10,
			Fragments:         i % 5,
			RunOns:            i % 4,
			Passive:           i % 3,
			Active:            i % 2,
			TypeTokenRatio:    float64(i%100) / 100,
			AcademicWords:     i % 8,
			Collocations:      i % 5,
		}
		r := Score(in)
		for _, v := range []float64{r.TaskAchievement, r.CoherenceCohesion, r.LexicalResource, r.GrammaticalRange, r.Overall} {
			assert.GreaterOrEqual(t, v, MinBand)
			assert.LessOrEqual(t, v, MaxBand)
			assert.Equal(t, 0.0, math.Mod(v*4, 1), "%v is not a quarter band", v)
		}
	}
}
