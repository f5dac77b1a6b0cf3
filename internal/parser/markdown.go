package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses markdown essays. Only prose is kept: headings,
// code and raw HTML are dropped and each block becomes one paragraph.
type MarkdownParser struct{}

// CanParse returns true if this parser can handle the file
func (p *MarkdownParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeMarkdown
}

// Parse parses a markdown file into essay text
func (p *MarkdownParser) Parse(path string, content []byte) (*Submission, error) {
	// Extract frontmatter if present
	frontmatter, contentWithoutFrontmatter := ParseFrontmatter(content)

	md := goldmark.New()
	reader := text.NewReader(contentWithoutFrontmatter)
	doc := md.Parser().Parse(reader)

	paragraphs := p.extractProse(doc, contentWithoutFrontmatter)

	return &Submission{
		Path:        path,
		Content:     content, // Keep original content
		FileType:    FileTypeMarkdown,
		Essay:       strings.Join(paragraphs, "\n\n"),
		Task:        frontmatterTask(frontmatter),
		Frontmatter: frontmatter,
	}, nil
}

// extractProse walks the AST and returns the text of every prose block
func (p *MarkdownParser) extractProse(doc ast.Node, source []byte) []string {
	var paragraphs []string

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.Heading, *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if s := strings.TrimSpace(inlineText(n, source)); s != "" {
				paragraphs = append(paragraphs, s)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return paragraphs
}

// inlineText flattens the inline children of a block, turning line breaks
// into spaces
func inlineText(block ast.Node, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return sb.String()
}
