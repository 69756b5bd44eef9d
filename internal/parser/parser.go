package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dgallion1/docinspect/internal/doctree"
)

// Parser converts raw document bytes into a Document whose sections carry
// raw text blocks.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options tune parser selection.
type Options struct {
	// PDFFallbackPdftotext retries PDF extraction with the pdftotext
	// binary when the Go library fails.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// newDocument returns an empty document titled after the file name.
func newDocument(filename string) *doctree.Document {
	base := filepath.Base(filename)
	return &doctree.Document{
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		Filename: filename,
	}
}

// sectionBuilder nests sections by heading level. Text seen before the
// first heading lands in an implicit level 0 section.
type sectionBuilder struct {
	root  *doctree.Section
	stack []*doctree.Section
}

func newSectionBuilder() *sectionBuilder {
	root := &doctree.Section{}
	return &sectionBuilder{root: root, stack: []*doctree.Section{root}}
}

func (b *sectionBuilder) heading(level int, header string, line, page int) {
	// Pop stack until we find a parent with lower level.
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].Level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	sec := &doctree.Section{Level: level, Header: header, HeaderLine: line, Page: page}
	parent := b.stack[len(b.stack)-1]
	parent.Sections = append(parent.Sections, sec)
	b.stack = append(b.stack, sec)
}

func (b *sectionBuilder) block(text string, line int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	// Indentation of the first line is kept for paragraph checks.
	text = strings.TrimRightFunc(strings.TrimLeft(text, "\r\n"), unicode.IsSpace)
	top := b.stack[len(b.stack)-1]
	top.Blocks = append(top.Blocks, doctree.Block{Text: text, Line: line})
}

// sections returns the top-level sections, led by the implicit section
// when it holds any text.
func (b *sectionBuilder) sections() []*doctree.Section {
	var out []*doctree.Section
	if len(b.root.Blocks) > 0 {
		out = append(out, &doctree.Section{Blocks: b.root.Blocks})
	}
	return append(out, b.root.Sections...)
}
