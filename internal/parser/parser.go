package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StdinPath names a submission read from standard input
const StdinPath = "-"

// Submission represents one essay loaded from a file
type Submission struct {
	Path        string
	Content     []byte // original bytes
	FileType    FileType
	Essay       string                 // prose to evaluate
	Task        string                 // declared task category, empty when not declared
	Frontmatter map[string]interface{} // YAML frontmatter from text and markdown files
}

// FileType represents the format of a submission file
type FileType int

const (
	FileTypePlain FileType = iota
	FileTypeMarkdown
	FileTypeJSON
	FileTypeYAML
)

func (t FileType) String() string {
	switch t {
	case FileTypeMarkdown:
		return "markdown"
	case FileTypeJSON:
		return "json"
	case FileTypeYAML:
		return "yaml"
	default:
		return "text"
	}
}

// SubmissionError reports a file that parsed but is not a valid submission
type SubmissionError struct {
	Path    string
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("invalid submission %s: %s", e.Path, e.Message)
}

// Parser defines the interface for parsing submission files
type Parser interface {
	Parse(path string, content []byte) (*Submission, error)
	CanParse(path string) bool
}

// Parse reads and parses a submission file
func Parse(path string) (*Submission, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(path, content)
}

// ParseReader parses a submission from r, using path only to pick the format
func ParseReader(path string, r io.Reader) (*Submission, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseContent(path, content)
}

// ParseContent parses already loaded content using the parser for path
func ParseContent(path string, content []byte) (*Submission, error) {
	return getParser(path).Parse(path, content)
}

// parsers is consulted in order; PlainParser accepts every path
var parsers = []Parser{
	&MarkdownParser{},
	&JSONParser{},
	&YAMLParser{},
	&PlainParser{},
}

// getParser returns the first parser that can handle path
func getParser(path string) Parser {
	for _, p := range parsers {
		if p.CanParse(path) {
			return p
		}
	}
	return &PlainParser{}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
		return FileTypeMarkdown
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypePlain
	}
}

// taskKeys are the frontmatter keys that declare a task category
var taskKeys = []string{"task", "taskType", "task_type"}

// frontmatterTask returns the declared task category, if any
func frontmatterTask(frontmatter map[string]interface{}) string {
	for _, key := range taskKeys {
		if v, ok := frontmatter[key]; ok {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	// Must start with ---
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	// Find the closing ---
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	// Extract frontmatter YAML
	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	// Return remaining content after frontmatter
	remaining := rest[endIdx+4:] // +4 for "\n---"
	if strings.HasPrefix(remaining, "\n") {
		remaining = remaining[1:]
	}

	return frontmatter, []byte(remaining)
}
