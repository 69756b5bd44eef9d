package doctree

import "unicode/utf8"

// Document is the root of a parsed document.
type Document struct {
	Title    string     // Document title (from metadata or filename)
	Filename string     // Source file name, used when reporting findings
	Sections []*Section // Top-level sections
}

// Section is a recursive section in the document tree.
type Section struct {
	Level      int    // Heading depth (0 for the implicit leading section)
	Header     string // Section heading (empty when the source had none)
	HeaderLine int    // Source line of the heading (0 if N/A)
	Page       int    // Source page (0 if N/A)

	// Blocks holds raw text as emitted by a parser. Segmentation turns
	// them into Paragraphs.
	Blocks     []Block
	Paragraphs []*Paragraph
	Sections   []*Section // Subsections
}

// Block is a run of raw text starting at a known source line.
type Block struct {
	Text string
	Line int // 1-based; 0 when the source format has no line information
}

// Paragraph is an ordered run of sentences.
type Paragraph struct {
	Sentences []*Sentence
	Indent    string // leading whitespace of the first line
}

// Position is a location in the original document.
type Position struct {
	Line   int // 1-based
	Offset int // 0-based column, counted in runes
}

// Sentence is a single sentence plus the position of its first character.
type Sentence struct {
	Content string
	Start   Position
}

// Offset maps a byte index in Content to a document position. Indexes past
// the end of Content map to the position just after the last character.
func (s *Sentence) Offset(i int) Position {
	if i > len(s.Content) {
		i = len(s.Content)
	}
	pos := s.Start
	for _, r := range s.Content[:i] {
		if r == '\n' {
			if pos.Line > 0 {
				pos.Line++
			}
			pos.Offset = 0
			continue
		}
		pos.Offset++
	}
	return pos
}

// RuneCount returns the number of characters in the sentence.
func (s *Sentence) RuneCount() int {
	return utf8.RuneCountInString(s.Content)
}

// Walk visits every section depth-first in document order.
func (d *Document) Walk(fn func(*Section)) {
	var walk func([]*Section)
	walk = func(sections []*Section) {
		for _, s := range sections {
			fn(s)
			walk(s.Sections)
		}
	}
	walk(d.Sections)
}

// Sentences returns every sentence of the section's own paragraphs.
func (s *Section) Sentences() []*Sentence {
	var out []*Sentence
	for _, p := range s.Paragraphs {
		out = append(out, p.Sentences...)
	}
	return out
}
