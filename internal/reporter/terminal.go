package reporter

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/pthm/bandlint/internal/engine"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/ui"
)

// maxQuoteLen bounds sentence text quoted in flags
const maxQuoteLen = 80

// TerminalReporter outputs results to the terminal with lipgloss styles
type TerminalReporter struct {
	w        io.Writer
	styles   *ui.Styles
	detailed bool
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles}
}

// NewDetailedReporter creates a terminal reporter that also prints
// statistics and a per-sentence table
func NewDetailedReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles, detailed: true}
}

// Report outputs evaluations to the terminal
func (r *TerminalReporter) Report(evals []Evaluation) error {
	for _, e := range evals {
		r.printEvaluation(e)
	}
	r.printSummary(evals)
	return nil
}

func (r *TerminalReporter) printEvaluation(e Evaluation) {
	s := r.styles
	res := e.Result

	// Print file header
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Header.Render(filepath.Base(e.Path)))
	fmt.Fprintln(r.w, s.Path.Render(fmt.Sprintf("  %s (%s, %d words, %d sentences, %d paragraphs)",
		e.Path, res.Task, res.Counts.Words, res.Counts.Sentences, res.Counts.Paragraphs)))
	fmt.Fprintln(r.w)

	b := res.BandScores
	r.printBand("Overall band", b.Overall)
	r.printBand("Task achievement", b.TaskAchievement)
	r.printBand("Coherence & cohesion", b.CoherenceCohesion)
	r.printBand("Lexical resource", b.LexicalResource)
	r.printBand("Grammatical range", b.GrammaticalRange)

	if r.detailed {
		r.printStatistics(res)
		r.printSentences(res)
	}

	fmt.Fprintln(r.w)
	for _, f := range res.Features.RunOns {
		r.printFlag(f)
	}
	for _, f := range res.Features.Fragments {
		r.printFlag(f)
	}
	for _, issue := range res.Features.Mechanics {
		fmt.Fprintf(r.w, "  %s %s %s\n", s.Suggestion.Render(s.IconSuggestion), issue.Message, s.Rule.Render("["+issue.Rule+"]"))
	}
	for _, strength := range res.Strengths {
		fmt.Fprintf(r.w, "  %s %s\n", s.Success.Render(s.IconSuccess), strength)
	}
	for _, item := range res.Items {
		if item.Example != nil {
			fmt.Fprintf(r.w, "      %s %s\n", s.Rule.Render(item.Message+":"),
				s.Quote.Render(fmt.Sprintf("%q -> %q", item.Example.Before, item.Example.After)))
			continue
		}
		fmt.Fprintf(r.w, "  %s %s\n", s.Info.Render(s.IconInfo), item.Message)
	}

	r.printOpinion(e)
}

func (r *TerminalReporter) printBand(label string, score float64) {
	s := r.styles
	fmt.Fprintf(r.w, "  %s%s\n", s.Label.Render(label), s.Band(score).Render(FormatBand(score)))
}

func (r *TerminalReporter) printFlag(f rules.Flag) {
	s := r.styles
	fmt.Fprintf(r.w, "  %s %s sentence %d: %s\n",
		s.Warning.Render(s.IconWarning), f.Kind, f.Index+1, s.Quote.Render(truncate(f.Text, maxQuoteLen)))
}

func (r *TerminalReporter) printStatistics(res *engine.Result) {
	s := r.styles
	f := res.Features

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Subheader.Render("  Statistics"))
	stats := []struct {
		label string
		value string
	}{
		{"Avg sentence length", fmt.Sprintf("%.1f words", f.AverageSentenceLength)},
		{"Avg word length", fmt.Sprintf("%.2f chars", f.AverageWordLength)},
		{"Complex words", fmt.Sprintf("%d", f.ComplexWordCount)},
		{"Type-token ratio", fmt.Sprintf("%.2f", f.Vocabulary.TypeTokenRatio)},
		{"Academic words", fmt.Sprintf("%d", f.Vocabulary.AcademicWordCount)},
		{"Collocations", fmt.Sprintf("%d", f.Vocabulary.CollocationCount)},
		{"Passive sentences", fmt.Sprintf("%d", len(f.Passive))},
		{"Active sentences", fmt.Sprintf("%d", len(f.Active))},
	}
	for _, st := range stats {
		fmt.Fprintf(r.w, "  %s%s\n", s.Label.Render(st.label), st.value)
	}
}

func (r *TerminalReporter) printSentences(res *engine.Result) {
	if res.Document == nil || len(res.Document.Sentences) == 0 {
		return
	}
	s := r.styles

	kinds := make(map[int][]string)
	for _, flags := range [][]rules.Flag{res.Features.Fragments, res.Features.RunOns, res.Features.Passive, res.Features.Active} {
		for _, f := range flags {
			kinds[f.Index] = append(kinds[f.Index], f.Kind.String())
		}
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Subheader.Render(fmt.Sprintf("  %-4s %-6s %-24s %s", "#", "words", "flags", "sentence")))
	for _, sent := range res.Document.Sentences {
		fmt.Fprintf(r.w, "  %-4d %-6d %-24s %s\n",
			sent.Index+1, sent.WordCount(), strings.Join(kinds[sent.Index], ","), truncate(sent.Text, maxQuoteLen))
	}
}

func (r *TerminalReporter) printOpinion(e Evaluation) {
	if e.Opinion == nil {
		return
	}
	s := r.styles

	fmt.Fprintln(r.w)
	if e.Opinion.Assessment == nil {
		fmt.Fprintf(r.w, "  %s %s\n", s.Warning.Render(s.IconWarning), "AI second opinion unavailable: "+e.Opinion.Error)
		return
	}

	a := e.Opinion.Assessment
	fmt.Fprintf(r.w, "  %s%s %s\n", s.Label.Render("AI second opinion"), s.Band(a.Overall).Render(FormatBand(a.Overall)),
		s.Subheader.Render(fmt.Sprintf("(TA %s, CC %s, LR %s, GR %s)",
			FormatBand(a.TaskAchievement), FormatBand(a.CoherenceCohesion), FormatBand(a.LexicalResource), FormatBand(a.GrammaticalRange))))
	if a.Summary != "" {
		fmt.Fprintf(r.w, "    %s\n", a.Summary)
	}
}

func (r *TerminalReporter) printSummary(evals []Evaluation) {
	summary := ComputeSummary(evals)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Separator.Render("─────────────────────────────────────"))

	noun := "files"
	if summary.Files == 1 {
		noun = "file"
	}
	fmt.Fprintf(r.w, "Evaluated %d %s: average overall band %s, %d run-ons, %d fragments, %d mechanics issues\n",
		summary.Files, noun, FormatBand(summary.AverageOverall), summary.RunOns, summary.Fragments, summary.Mechanics)
}

// FormatBand renders a band with one decimal for whole and half bands and
// two for quarter bands
func FormatBand(score float64) string {
	if math.Mod(score*2, 1) == 0 {
		return fmt.Sprintf("%.1f", score)
	}
	return fmt.Sprintf("%.2f", score)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
