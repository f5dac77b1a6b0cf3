// Package fixer corrects the mechanical slips the document rules report:
// repeated words, lowercase sentence starts and missing spaces after
// punctuation.
package fixer

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/ui"
)

// excerptRadius is how many bytes of context are shown each side of a change
const excerptRadius = 30

// Options configures the fixer behavior
type Options struct {
	DryRun bool
}

// Change describes one applied edit with the surrounding text
type Change struct {
	Rule   string
	Line   int
	Before string
	After  string
}

// Fixer applies fixes to essay text
type Fixer struct {
	opts  Options
	ui    *ui.UI
	rules []rules.FixableRule
}

// New creates a Fixer using the fixable document rules in registry
func New(opts Options, u *ui.UI, registry *rules.Registry) *Fixer {
	f := &Fixer{opts: opts, ui: u}
	for _, r := range registry.DocumentRules() {
		if fr, ok := r.(rules.FixableRule); ok {
			f.rules = append(f.rules, fr)
		}
	}
	return f
}

// Fix returns content with every fixable issue corrected. Rules run one
// after another, each on the output of the previous one.
func (f *Fixer) Fix(content string) (string, []Change) {
	return f.fix(content, nil)
}

// FixSubmission corrects only the essay text of a submission, leaving its
// frontmatter and any markdown headings, code and HTML as they are
func (f *Fixer) FixSubmission(path, content string) (string, []Change) {
	return f.fix(content, func(s string) []parser.Span {
		return parser.NonProse(path, []byte(s))
	})
}

func (f *Fixer) fix(content string, nonProse func(string) []parser.Span) (string, []Change) {
	var changes []Change
	for _, rule := range f.rules {
		edits := rule.Fixes(content)
		if nonProse != nil {
			// spans move as earlier rules edit, so find them per pass
			edits = outside(edits, nonProse(content))
		}
		for _, e := range edits {
			changes = append(changes, describe(content, e))
		}
		content = ApplyEdits(content, edits)
	}
	return content, changes
}

// outside drops the edits that touch any of spans
func outside(edits []rules.Edit, spans []parser.Span) []rules.Edit {
	if len(spans) == 0 {
		return edits
	}
	kept := edits[:0]
	for _, e := range edits {
		if !touches(e, spans) {
			kept = append(kept, e)
		}
	}
	return kept
}

// touches reports whether e overlaps a span. An insertion touches a span
// when it falls strictly inside it.
func touches(e rules.Edit, spans []parser.Span) bool {
	for _, s := range spans {
		if e.Start == e.End {
			if s.Start < e.Start && e.Start < s.End {
				return true
			}
			continue
		}
		if e.Start < s.End && e.End > s.Start {
			return true
		}
	}
	return false
}

// ApplyEdits applies non-overlapping edits sorted by Start
func ApplyEdits(content string, edits []rules.Edit) string {
	if len(edits) == 0 {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, e := range edits {
		b.WriteString(content[last:e.Start])
		b.WriteString(e.New)
		last = e.End
	}
	b.WriteString(content[last:])
	return b.String()
}

// FixFile corrects a text or markdown submission in place. In dry-run mode
// the changes are only printed.
func (f *Fixer) FixFile(path string) ([]Change, error) {
	switch parser.GetFileType(path) {
	case parser.FileTypePlain, parser.FileTypeMarkdown:
	default:
		return nil, fmt.Errorf("%s: only text and markdown submissions can be fixed", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fixed, changes := f.FixSubmission(path, string(content))
	if len(changes) == 0 {
		return nil, nil
	}

	if f.opts.DryRun {
		f.printDryRun(path, changes)
		return changes, nil
	}

	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintln(f.ui.Writer, f.ui.Styles.Success.Render(
		fmt.Sprintf("%s Fixed %d issue(s) in %s", f.ui.Styles.IconSuccess, len(changes), path),
	))
	return changes, nil
}

func (f *Fixer) printDryRun(path string, changes []Change) {
	s := f.ui.Styles
	for _, c := range changes {
		fmt.Fprintln(f.ui.Writer, s.Suggestion.Render(
			fmt.Sprintf("Would fix: %s", c.Rule),
		))
		fmt.Fprintf(f.ui.Writer, "  %s:%d\n", path, c.Line)
		fmt.Fprintln(f.ui.Writer, s.Error.Render("    - "+c.Before))
		fmt.Fprintln(f.ui.Writer, s.Success.Render("    + "+c.After))
	}
	fmt.Fprintln(f.ui.Writer)
}

// describe renders e against content as a one-line before/after excerpt
func describe(content string, e rules.Edit) Change {
	lineStart := strings.LastIndexByte(content[:e.Start], '\n') + 1
	lineEnd := len(content)
	if i := strings.IndexByte(content[e.End:], '\n'); i >= 0 {
		lineEnd = e.End + i
	}

	line := content[lineStart:lineEnd]
	col := e.Start - lineStart
	fixedLine := line[:col] + e.New + line[e.End-lineStart:]

	return Change{
		Rule:   e.Rule,
		Line:   strings.Count(content[:e.Start], "\n") + 1,
		Before: excerpt(line, col),
		After:  excerpt(fixedLine, col),
	}
}

// excerpt returns up to excerptRadius bytes each side of at, cut on rune
// boundaries
func excerpt(line string, at int) string {
	start := max(at-excerptRadius, 0)
	for start > 0 && !utf8.RuneStart(line[start]) {
		start--
	}
	end := min(at+excerptRadius, len(line))
	for end < len(line) && !utf8.RuneStart(line[end]) {
		end++
	}

	out := line[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(line) {
		out += "..."
	}
	return out
}
