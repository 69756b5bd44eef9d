package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docinspect/internal/doctree"
)

// csvBatchSize is the number of data rows grouped into one section.
const csvBatchSize = 20

// CSVParser handles CSV files. The first row is treated as headers; data
// rows are grouped into sections and every non-empty cell becomes a block
// at its source line.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	doc := newDocument(filename)

	var headers []string
	var sec *doctree.Section
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if headers == nil {
			headers = record
			continue
		}

		if row%csvBatchSize == 0 {
			first := row + 2 // 1-indexed, skip header
			sec = &doctree.Section{
				Level:  1,
				Header: fmt.Sprintf("Rows %d-%d", first, first+csvBatchSize-1),
			}
			sec.HeaderLine, _ = reader.FieldPos(0)
			doc.Sections = append(doc.Sections, sec)
		}
		row++

		for j, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			line, _ := reader.FieldPos(j)
			sec.Blocks = append(sec.Blocks, doctree.Block{Text: cell, Line: line})
		}
	}

	// Trim the last batch label to the rows actually present.
	if sec != nil {
		if last := (row-1)%csvBatchSize + 1; last < csvBatchSize {
			first := row - last + 2
			sec.Header = fmt.Sprintf("Rows %d-%d", first, row+1)
		}
	}

	return doc, nil
}
