package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docinspect/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Code blocks, raw
// HTML and thematic breaks are not prose and are left out.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	b := newSectionBuilder()
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				b.heading(node.Level, inlineText(node, src), blockLine(node, src), 0)
			case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
				// not prose
			case *ast.Paragraph, *ast.TextBlock:
				b.block(inlineText(node, src), blockLine(node, src))
			default:
				// Lists, list items and blockquotes contain further blocks.
				walk(c)
			}
		}
	}
	walk(root)

	doc := newDocument(filename)
	doc.Sections = b.sections()
	return doc, nil
}

// inlineText collects the text of n's inline children. Soft and hard line
// breaks are kept as newlines so sentence positions map back to source
// lines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.URL(src))
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return strings.TrimRightFunc(strings.TrimLeft(buf.String(), "\n"), unicode.IsSpace)
}

// blockLine returns the 1-based source line of a block node, or 0 when
// goldmark recorded no segment for it.
func blockLine(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	start := lines.At(0).Start
	if start > len(src) {
		start = len(src)
	}
	return bytes.Count(src[:start], []byte("\n")) + 1
}
