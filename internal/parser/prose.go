package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Span is the byte range [Start, End) of a submission file
type Span struct {
	Start, End int
}

// NonProse returns the ranges of content that are not essay text, in
// ascending order: YAML frontmatter, and in markdown the headings, code
// blocks and raw HTML blocks that MarkdownParser leaves out of the essay.
// JSON and YAML submissions are covered entirely.
func NonProse(path string, content []byte) []Span {
	ft := GetFileType(path)
	if ft != FileTypePlain && ft != FileTypeMarkdown {
		return []Span{{Start: 0, End: len(content)}}
	}

	var spans []Span
	_, body := ParseFrontmatter(content)
	offset := len(content) - len(body)
	if offset > 0 {
		spans = append(spans, Span{Start: 0, End: offset})
	}
	if ft != FileTypeMarkdown {
		return spans
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var (
			s  Span
			ok bool
		)
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			s, ok = fenceSpan(node, body)
		case *ast.HTMLBlock:
			s, ok = blockSpan(node, body)
			if ok && node.HasClosure() {
				s.End = max(s.End, lineEnd(body, node.ClosureLine.Start))
			}
		case *ast.Heading, *ast.CodeBlock:
			s, ok = blockSpan(node, body)
		default:
			return ast.WalkContinue, nil
		}

		if ok {
			spans = append(spans, Span{Start: s.Start + offset, End: s.End + offset})
		}
		return ast.WalkSkipChildren, nil
	})

	return spans
}

// blockSpan covers the whole source lines of a block
func blockSpan(n ast.Node, src []byte) (Span, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return Span{}, false
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	return Span{
		Start: lineStart(src, first.Start),
		End:   lineEnd(src, max(last.Stop-1, last.Start)),
	}, true
}

// fenceSpan covers a fenced code block including both fence lines. The
// opening fence is found through the info string or the first code line.
func fenceSpan(n *ast.FencedCodeBlock, src []byte) (Span, bool) {
	lines := n.Lines()

	var open, after int
	switch {
	case n.Info != nil:
		open = n.Info.Segment.Start
		after = lineEnd(src, open)
	case lines.Len() > 0:
		open = lines.At(0).Start - 1
		after = lines.At(0).Start
	default:
		return Span{}, false
	}
	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		after = lineEnd(src, max(last.Stop-1, last.Start))
	}

	end := after
	if after < len(src) {
		end = lineEnd(src, after)
	}
	return Span{Start: lineStart(src, open), End: end}, true
}

// lineStart returns the offset of the line holding pos
func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line at pos
func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	i := bytes.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i + 1
}
