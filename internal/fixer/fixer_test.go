package fixer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/pthm/bandlint/internal/ui"
)

func newFixer(opts Options) (*Fixer, *bytes.Buffer) {
	var buf bytes.Buffer
	u := ui.New(&buf, &buf, "terminal")
	return New(opts, u, rules.DefaultRegistry(lexicon.Default())), &buf
}

func TestFix(t *testing.T) {
	f, _ := newFixer(Options{})

	fixed, changes := f.Fix("I saw the the cat.it ran,fast. then it stopped.")

	assert.Equal(t, "I saw the cat.it ran, fast. Then it stopped.", fixed)
	require.Len(t, changes, 3)
	assert.Equal(t, "repeated-words", changes[0].Rule)
	assert.Equal(t, "lowercase-start", changes[1].Rule)
	assert.Equal(t, "missing-space", changes[2].Rule)
}

func TestFixClean(t *testing.T) {
	f, _ := newFixer(Options{})

	input := "Cities are growing. Transport must improve, and quickly."
	fixed, changes := f.Fix(input)
	assert.Equal(t, input, fixed)
	assert.Empty(t, changes)
}

func TestFixIsIdempotent(t *testing.T) {
	f, _ := newFixer(Options{})

	once, _ := f.Fix("It was was late. we left;quickly. And and then home.")
	twice, changes := f.Fix(once)
	assert.Equal(t, once, twice)
	assert.Empty(t, changes)
}

func TestApplyEdits(t *testing.T) {
	edits := []rules.Edit{
		{Start: 0, End: 1, Old: "a", New: "A"},
		{Start: 3, End: 3, New: " "},
		{Start: 5, End: 9, Old: " bad"},
	}
	assert.Equal(t, "Ab, cd", ApplyEdits("ab,cd bad", edits))
	assert.Equal(t, "unchanged", ApplyEdits("unchanged", nil))
}

func TestDescribe(t *testing.T) {
	content := "First line.\nSecond line with the the error."
	start := strings.Index(content, " the error")
	c := describe(content, rules.Edit{Rule: "repeated-words", Start: start, End: start + 4, Old: " the"})

	assert.Equal(t, 2, c.Line)
	assert.Equal(t, "Second line with the the error.", c.Before)
	assert.Equal(t, "Second line with the error.", c.After)
}

func TestExcerpt(t *testing.T) {
	line := strings.Repeat("a", 50) + "X" + strings.Repeat("b", 50)
	got := excerpt(line, 50)

	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "X")

	assert.Equal(t, "short", excerpt("short", 2))
}

func TestFixFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte("It is is fine.\n"), 0o600))

	f, out := newFixer(Options{})
	changes, err := f.FixFile(path)
	require.NoError(t, err)
	assert.Len(t, changes, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "It is fine.\n", string(data))
	assert.Contains(t, out.String(), "Fixed 1 issue(s)")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFixFileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "essay.md")
	original := "# Title\n\nIt is is fine.\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f, out := newFixer(Options{DryRun: true})
	changes, err := f.FixFile(path)
	require.NoError(t, err)
	assert.Len(t, changes, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out.String(), "Would fix: repeated-words")
	assert.Contains(t, out.String(), path+":3")
	assert.Contains(t, out.String(), "+ It is fine.")
}

func TestFixFileRejectsStructuredSubmissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"essay":"x"}`), 0o644))

	f, _ := newFixer(Options{})
	_, err := f.FixFile(path)
	assert.Error(t, err)
}

func TestFixFileLeavesFrontmatterAndCodeAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.md")
	original := "---\ntask: task2\ntags: [a,b]\n---\n# Essay\n\nCities grow fast.\n\n```\nx := f(a,b)\n```\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f, out := newFixer(Options{})
	changes, err := f.FixFile(path)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.NotContains(t, out.String(), "Fixed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestFixFileFixesProseAroundCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.md")
	original := "---\ntask: task2\ntags: [a,b]\n---\n# Essay\n\nIt is is fine.\n\n```\nx := f(a,b)\n```\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f, out := newFixer(Options{DryRun: true})
	changes, err := f.FixFile(path)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "repeated-words", changes[0].Rule)
	assert.Equal(t, 7, changes[0].Line)
	assert.Contains(t, out.String(), path+":7")

	f, _ = newFixer(Options{})
	_, err = f.FixFile(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(original, "It is is fine.", "It is fine.", 1), string(data))
}

func TestFixSubmissionPlainFrontmatter(t *testing.T) {
	f, _ := newFixer(Options{})

	fixed, changes := f.FixSubmission("essay.txt", "---\ntags: [a,b]\n---\nwe left;quickly.\n")
	assert.Equal(t, "---\ntags: [a,b]\n---\nwe left; quickly.\n", fixed)
	require.Len(t, changes, 1)
	assert.Equal(t, "missing-space", changes[0].Rule)

	// without a declared path everything is treated as prose
	fixed, _ = f.Fix("tags: [a,b]")
	assert.Equal(t, "tags: [a, b]", fixed)
}

func TestTouches(t *testing.T) {
	spans := []parser.Span{{Start: 10, End: 20}}

	assert.True(t, touches(rules.Edit{Start: 15, End: 16}, spans))
	assert.True(t, touches(rules.Edit{Start: 5, End: 11}, spans))
	assert.True(t, touches(rules.Edit{Start: 15, End: 15}, spans))
	assert.False(t, touches(rules.Edit{Start: 20, End: 22}, spans))
	assert.False(t, touches(rules.Edit{Start: 10, End: 10}, spans))
	assert.False(t, touches(rules.Edit{Start: 20, End: 20}, spans))
	assert.False(t, touches(rules.Edit{Start: 2, End: 10}, spans))
}
