// Package report writes validation findings to an output stream.
//
// A Sink receives one FlushHeader call, zero or more Flush calls and one
// FlushFooter call per run, always from a single goroutine.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/dgallion1/docinspect/internal/validator"
)

// Sink receives findings as they are produced.
type Sink interface {
	FlushHeader() error
	Flush(e validator.ValidationError) error
	FlushFooter() error
}

// Formats lists the names ForFormat accepts.
var Formats = []string{"plain", "json"}

// ForFormat returns the sink for a format name.
func ForFormat(name string, w io.Writer) (Sink, error) {
	switch strings.ToLower(name) {
	case "", "plain":
		return NewPlain(w, isTerminal(w)), nil
	case "json":
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %q", name)
	}
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) FlushHeader() error { return nil }

func (NopSink) Flush(validator.ValidationError) error { return nil }

func (NopSink) FlushFooter() error { return nil }

// Collector keeps every finding in memory.
type Collector struct {
	Headers  int
	Footers  int
	Findings []validator.ValidationError
}

func (c *Collector) FlushHeader() error {
	c.Headers++
	return nil
}

func (c *Collector) Flush(e validator.ValidationError) error {
	c.Findings = append(c.Findings, e)
	return nil
}

func (c *Collector) FlushFooter() error {
	c.Footers++
	return nil
}

// Plain writes one line per finding and a summary footer.
type Plain struct {
	w      io.Writer
	color  bool
	styles map[validator.Severity]lipgloss.Style
	counts map[validator.Severity]int
}

// NewPlain creates a plain sink. Severities are colored when color is set.
func NewPlain(w io.Writer, color bool) *Plain {
	return &Plain{
		w:     w,
		color: color,
		styles: map[validator.Severity]lipgloss.Style{
			validator.SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
			validator.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
			validator.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		},
		counts: make(map[validator.Severity]int),
	}
}

func (p *Plain) FlushHeader() error {
	clear(p.counts)
	return nil
}

func (p *Plain) Flush(e validator.ValidationError) error {
	p.counts[e.Severity]++
	line := e.String()
	if p.color {
		tag := "[" + string(e.Severity) + "]"
		if style, ok := p.styles[e.Severity]; ok {
			line = strings.Replace(line, tag, style.Render(tag), 1)
		}
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

func (p *Plain) FlushFooter() error {
	total := p.counts[validator.SeverityError] + p.counts[validator.SeverityWarning] + p.counts[validator.SeverityInfo]
	if total == 0 {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "%d finding(s): %d error(s), %d warning(s), %d info\n",
		total, p.counts[validator.SeverityError], p.counts[validator.SeverityWarning], p.counts[validator.SeverityInfo])
	return err
}

// JSON streams findings as a single JSON array.
type JSON struct {
	w     io.Writer
	count int
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) FlushHeader() error {
	j.count = 0
	_, err := io.WriteString(j.w, "[")
	return err
}

func (j *JSON) Flush(e validator.ValidationError) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal finding: %w", err)
	}
	sep := "\n  "
	if j.count > 0 {
		sep = ",\n  "
	}
	j.count++
	if _, err := io.WriteString(j.w, sep); err != nil {
		return err
	}
	_, err = j.w.Write(data)
	return err
}

func (j *JSON) FlushFooter() error {
	end := "]\n"
	if j.count > 0 {
		end = "\n]\n"
	}
	_, err := io.WriteString(j.w, end)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
