package parser

// PlainParser parses plain text essays with optional YAML frontmatter
type PlainParser struct{}

// CanParse returns true (fallback parser)
func (p *PlainParser) CanParse(path string) bool {
	return true
}

// Parse parses a plain text file
func (p *PlainParser) Parse(path string, content []byte) (*Submission, error) {
	frontmatter, body := ParseFrontmatter(content)

	return &Submission{
		Path:        path,
		Content:     content,
		FileType:    FileTypePlain,
		Essay:       string(body),
		Task:        frontmatterTask(frontmatter),
		Frontmatter: frontmatter,
	}, nil
}
