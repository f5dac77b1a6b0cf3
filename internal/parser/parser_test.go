package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		path     string
		expected FileType
	}{
		{"essay.md", FileTypeMarkdown},
		{"essay.MARKDOWN", FileTypeMarkdown},
		{"submission.json", FileTypeJSON},
		{"submission.yaml", FileTypeYAML},
		{"submission.yml", FileTypeYAML},
		{"essay.txt", FileTypePlain},
		{"essay", FileTypePlain},
		{StdinPath, FileTypePlain},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := GetFileType(tt.path); got != tt.expected {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFileTypeString(t *testing.T) {
	tests := []struct {
		fileType FileType
		expected string
	}{
		{FileTypePlain, "text"},
		{FileTypeMarkdown, "markdown"},
		{FileTypeJSON, "json"},
		{FileTypeYAML, "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.fileType.String(); got != tt.expected {
				t.Errorf("FileType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantTask string
		wantBody string
	}{
		{
			name:     "task declared",
			content:  "---\ntask: task1\n---\nThe chart shows sales.",
			wantTask: "task1",
			wantBody: "The chart shows sales.",
		},
		{
			name:     "no frontmatter",
			content:  "The chart shows sales.",
			wantTask: "",
			wantBody: "The chart shows sales.",
		},
		{
			name:     "unterminated",
			content:  "---\ntask: task1\nThe chart shows sales.",
			wantTask: "",
			wantBody: "---\ntask: task1\nThe chart shows sales.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := ParseFrontmatter([]byte(tt.content))
			if got := frontmatterTask(fm); got != tt.wantTask {
				t.Errorf("frontmatter task = %q, want %q", got, tt.wantTask)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParsePlain(t *testing.T) {
	sub, err := ParseContent("essay.txt", []byte("---\ntaskType: short\n---\nFirst paragraph.\n\nSecond paragraph."))
	if err != nil {
		t.Fatalf("ParseContent() error = %v", err)
	}
	if sub.Task != "short" {
		t.Errorf("Task = %q, want %q", sub.Task, "short")
	}
	if sub.Essay != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("Essay = %q", sub.Essay)
	}
	if sub.FileType != FileTypePlain {
		t.Errorf("FileType = %v, want %v", sub.FileType, FileTypePlain)
	}
}

func TestParseMarkdown(t *testing.T) {
	content := `---
task: extended
---
# My essay

Many people believe that cities
should invest in *public* transport.

` + "```" + `
code is ignored
` + "```" + `

- Trains are fast.
- Buses are cheap.

> Roads are still [essential](https://example.com).
`

	sub, err := ParseContent("essay.md", []byte(content))
	if err != nil {
		t.Fatalf("ParseContent() error = %v", err)
	}

	want := strings.Join([]string{
		"Many people believe that cities should invest in public transport.",
		"Trains are fast.",
		"Buses are cheap.",
		"Roads are still essential.",
	}, "\n\n")
	if sub.Essay != want {
		t.Errorf("Essay = %q, want %q", sub.Essay, want)
	}
	if sub.Task != "extended" {
		t.Errorf("Task = %q, want %q", sub.Task, "extended")
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantEssay string
		wantTask  string
		wantErr   bool
	}{
		{
			name:      "valid",
			content:   `{"essay": "Cities grow.", "taskType": "task2"}`,
			wantEssay: "Cities grow.",
			wantTask:  "task2",
		},
		{
			name:      "empty essay is valid",
			content:   `{"essay": ""}`,
			wantEssay: "",
		},
		{
			name:    "missing essay",
			content: `{"taskType": "task1"}`,
			wantErr: true,
		},
		{
			name:    "essay not a string",
			content: `{"essay": 42}`,
			wantErr: true,
		},
		{
			name:    "unknown task",
			content: `{"essay": "Cities grow.", "taskType": "task3"}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			content: `{"essay": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseContent("submission.json", []byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseContent(%q) expected error", tt.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContent(%q) error = %v", tt.content, err)
			}
			if sub.Essay != tt.wantEssay || sub.Task != tt.wantTask {
				t.Errorf("ParseContent(%q) = (%q, %q), want (%q, %q)", tt.content, sub.Essay, sub.Task, tt.wantEssay, tt.wantTask)
			}
		})
	}
}

func TestParseJSONSubmissionError(t *testing.T) {
	_, err := ParseContent("submission.json", []byte(`{"taskType": "task1"}`))

	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("error = %v, want *SubmissionError", err)
	}
	if !strings.Contains(subErr.Message, "essay") {
		t.Errorf("Message = %q, want mention of essay", subErr.Message)
	}
}

func TestParseYAML(t *testing.T) {
	sub, err := ParseContent("submission.yaml", []byte("task: task1\nessay: |\n  The chart shows sales.\n"))
	if err != nil {
		t.Fatalf("ParseContent() error = %v", err)
	}
	if sub.Essay != "The chart shows sales.\n" {
		t.Errorf("Essay = %q", sub.Essay)
	}
	if sub.Task != "task1" {
		t.Errorf("Task = %q, want %q", sub.Task, "task1")
	}

	_, err = ParseContent("submission.yaml", []byte("task: task1\n"))
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Errorf("missing essay error = %v, want *SubmissionError", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.txt")
	if err := os.WriteFile(path, []byte("Cities grow."), 0o644); err != nil {
		t.Fatal(err)
	}

	sub, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", path, err)
	}
	if sub.Path != path || sub.Essay != "Cities grow." {
		t.Errorf("Parse(%q) = %+v", path, sub)
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Parse() of missing file expected error")
	}
}

func TestParseReader(t *testing.T) {
	sub, err := ParseReader(StdinPath, strings.NewReader("Cities grow."))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if sub.Essay != "Cities grow." {
		t.Errorf("Essay = %q", sub.Essay)
	}
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		path string
		want Parser
	}{
		{"essay.md", &MarkdownParser{}},
		{"essay.MARKDOWN", &MarkdownParser{}},
		{"essay.json", &JSONParser{}},
		{"essay.yml", &YAMLParser{}},
		{"essay.txt", &PlainParser{}},
		{StdinPath, &PlainParser{}},
	}

	for _, tt := range tests {
		got := getParser(tt.path)
		if fmt.Sprintf("%T", got) != fmt.Sprintf("%T", tt.want) {
			t.Errorf("getParser(%q) = %T, want %T", tt.path, got, tt.want)
		}
		if !got.CanParse(tt.path) {
			t.Errorf("%T.CanParse(%q) = false", got, tt.path)
		}
	}
}

func TestNonProse(t *testing.T) {
	md := "---\ntask: task2\ntags: [a,b]\n---\n# Essay\n\nCities grow fast.\n\n```go\nx := f(a,b)\n```\n\n<div>\nraw,html\n</div>\n\n    indented,code\n\nThe end.\n"

	spans := NonProse("essay.md", []byte(md))
	var covered []string
	for _, s := range spans {
		covered = append(covered, md[s.Start:s.End])
	}

	want := []string{
		"---\ntask: task2\ntags: [a,b]\n---\n",
		"# Essay\n",
		"```go\nx := f(a,b)\n```\n",
		"<div>\nraw,html\n</div>\n",
		"    indented,code\n",
	}
	if len(covered) != len(want) {
		t.Fatalf("NonProse() = %q, want %q", covered, want)
	}
	for i := range want {
		if covered[i] != want[i] {
			t.Errorf("span %d = %q, want %q", i, covered[i], want[i])
		}
	}
	for _, s := range spans {
		if strings.Contains(md[s.Start:s.End], "Cities") || strings.Contains(md[s.Start:s.End], "The end.") {
			t.Errorf("span %q covers prose", md[s.Start:s.End])
		}
	}
}

func TestNonProseFenceWithoutInfo(t *testing.T) {
	md := "Intro.\n\n```\nx := f(a,b)\n```\n"

	spans := NonProse("essay.md", []byte(md))
	if len(spans) != 1 || md[spans[0].Start:spans[0].End] != "```\nx := f(a,b)\n```\n" {
		t.Errorf("NonProse() = %+v", spans)
	}
}

func TestNonProsePlainAndStructured(t *testing.T) {
	txt := "---\ntask: task1\n---\nIt rose,then fell."
	spans := NonProse("essay.txt", []byte(txt))
	if len(spans) != 1 || txt[spans[0].Start:spans[0].End] != "---\ntask: task1\n---\n" {
		t.Errorf("NonProse(txt) = %+v", spans)
	}

	if spans := NonProse(StdinPath, []byte("No frontmatter here.")); len(spans) != 0 {
		t.Errorf("NonProse(stdin) = %+v, want none", spans)
	}

	js := `{"essay": "x"}`
	spans = NonProse("essay.json", []byte(js))
	if len(spans) != 1 || spans[0] != (Span{Start: 0, End: len(js)}) {
		t.Errorf("NonProse(json) = %+v", spans)
	}
}
