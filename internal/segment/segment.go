package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/doctree"
)

// Document splits the raw blocks of every section into paragraphs and
// sentences. Sections that already have paragraphs are left alone.
func Document(doc *doctree.Document, tbl *chartable.Table) {
	if tbl == nil {
		tbl = chartable.Default()
	}
	doc.Walk(func(sec *doctree.Section) {
		if len(sec.Paragraphs) > 0 {
			return
		}
		for _, b := range sec.Blocks {
			sec.Paragraphs = append(sec.Paragraphs, Paragraphs(b, tbl)...)
		}
	})
}

// Paragraphs splits a block on blank lines and each paragraph into sentences.
func Paragraphs(b doctree.Block, tbl *chartable.Table) []*doctree.Paragraph {
	var result []*doctree.Paragraph
	var current []string
	startLine := 0
	indent := ""

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.Join(current, "\n")
		sents := Sentences(text, doctree.Position{Line: startLine}, tbl)
		if len(sents) > 0 {
			result = append(result, &doctree.Paragraph{Sentences: sents, Indent: indent})
		}
		current = current[:0]
	}

	for i, line := range strings.Split(b.Text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(current) == 0 {
			startLine = lineAt(b.Line, i)
			indent = line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
		}
		current = append(current, line)
	}
	flush()

	return result
}

// Sentences splits text after each sentence terminator of the table. A
// terminator that needs a following space only ends a sentence when it is
// followed by whitespace or the end of text.
func Sentences(text string, start doctree.Position, tbl *chartable.Table) []*doctree.Sentence {
	if tbl == nil {
		tbl = chartable.Default()
	}
	terms := tbl.Terminators()

	var sentences []*doctree.Sentence
	pos := start
	sentStart := -1
	var sentPos doctree.Position

	flush := func(end int) {
		if sentStart < 0 {
			return
		}
		content := strings.TrimRightFunc(text[sentStart:end], unicode.IsSpace)
		if content != "" {
			sentences = append(sentences, &doctree.Sentence{Content: content, Start: sentPos})
		}
		sentStart = -1
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if sentStart < 0 && !unicode.IsSpace(r) {
			sentStart = i
			sentPos = pos
		}
		if sentStart >= 0 {
			if term, ok := terminatorAt(text, i, terms); ok {
				end := i + len(term.Value)
				if !term.NeedSpace || end == len(text) || startsWithSpace(text[end:]) {
					pos = advance(pos, text[i:end])
					i = end
					flush(end)
					continue
				}
			}
		}
		pos = advance(pos, text[i:i+size])
		i += size
	}
	flush(len(text))

	return sentences
}

func terminatorAt(text string, i int, terms []chartable.Symbol) (chartable.Symbol, bool) {
	for _, t := range terms {
		if strings.HasPrefix(text[i:], t.Value) {
			return t, true
		}
	}
	return chartable.Symbol{}, false
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

func advance(pos doctree.Position, s string) doctree.Position {
	for _, r := range s {
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

// lineAt returns the source line of the i-th line of a block, or 0 when
// the block carries no line information.
func lineAt(blockLine, i int) int {
	if blockLine <= 0 {
		return 0
	}
	return blockLine + i
}
