package validator

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docinspect/internal/doctree"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity accepts error, warn(ing) and info in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Rank orders severities, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// ValidationError is one finding. It is a value reported to the user, not
// a Go error. Start and End are nil when the validator could not point at
// a span.
type ValidationError struct {
	Message   string            `json:"message"`
	Validator string            `json:"validator"`
	Severity  Severity          `json:"severity"`
	Start     *doctree.Position `json:"start,omitempty"`
	End       *doctree.Position `json:"end,omitempty"`
	Sentence  string            `json:"sentence,omitempty"`
	File      string            `json:"file,omitempty"`
}

func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(":")
	}
	if e.Start != nil {
		fmt.Fprintf(&b, "%d:%d:", e.Start.Line, e.Start.Offset)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "[%s] %s: %s", e.Severity, e.Validator, e.Message)
	return b.String()
}
