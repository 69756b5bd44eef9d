package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docinspect/internal/doctree"
)

// TextParser handles plain text files. The whole file is one section and
// every blank-line separated paragraph becomes a block.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sec := &doctree.Section{}
	var current strings.Builder
	start, lineNo := 0, 0

	flush := func() {
		if current.Len() > 0 {
			sec.Blocks = append(sec.Blocks, doctree.Block{Text: current.String(), Line: start})
			current.Reset()
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() == 0 {
			start = lineNo
		} else {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := newDocument(filename)
	if len(sec.Blocks) > 0 {
		doc.Sections = []*doctree.Section{sec}
	}
	return doc, nil
}
