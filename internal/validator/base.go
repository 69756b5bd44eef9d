package validator

import (
	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
)

// Base carries the state every validator needs: its name, configuration
// node, severity and the shared character table. Embed it and call
// Configure from Initialize.
type Base struct {
	name     string
	node     *config.Node
	severity Severity
	chars    *chartable.Table
}

// Configure records the node and reads the optional "level" attribute.
func (b *Base) Configure(node *config.Node, res Resources) error {
	if node == nil {
		node = config.NewNode("", nil)
	}
	b.name = node.Name
	b.node = node.Clone()
	b.chars = res.Chars
	if b.chars == nil {
		b.chars = chartable.Default()
	}
	b.severity = SeverityError
	if lvl, ok := node.Attribute("level"); ok {
		sev, err := ParseSeverity(lvl)
		if err != nil {
			return &ConfigError{Validator: b.name, Err: err}
		}
		b.severity = sev
	}
	return nil
}

func (b *Base) Name() string {
	return b.name
}

// Node returns the validator's own copy of its configuration.
func (b *Base) Node() *config.Node {
	return b.node
}

func (b *Base) Severity() Severity {
	return b.severity
}

func (b *Base) Chars() *chartable.Table {
	return b.chars
}

// RequireAttribute returns the named attribute or a MissingAttributeError.
func (b *Base) RequireAttribute(key string) (string, error) {
	v, ok := b.node.Attribute(key)
	if !ok || v == "" {
		return "", &MissingAttributeError{Validator: b.name, Attribute: key}
	}
	return v, nil
}

// IntAttribute reads an integer attribute, wrapping parse failures.
func (b *Base) IntAttribute(key string, fallback int) (int, error) {
	v, err := b.node.IntAttribute(key, fallback)
	if err != nil {
		return 0, &ConfigError{Validator: b.name, Err: err}
	}
	return v, nil
}

// CloneBase copies the base with its own configuration node. The character
// table is shared; it is read-only.
func (b *Base) CloneBase() Base {
	return Base{
		name:     b.name,
		node:     b.node.Clone(),
		severity: b.severity,
		chars:    b.chars,
	}
}

// NewError builds a finding without a position.
func (b *Base) NewError(msg string) ValidationError {
	return ValidationError{Message: msg, Validator: b.name, Severity: b.severity}
}

// NewSentenceError builds a finding positioned at the start of s.
func (b *Base) NewSentenceError(s *doctree.Sentence, msg string) ValidationError {
	start := s.Start
	return ValidationError{
		Message:   msg,
		Validator: b.name,
		Severity:  b.severity,
		Start:     &start,
		Sentence:  s.Content,
	}
}

// NewSpanError builds a finding covering bytes [from, to) of s.
func (b *Base) NewSpanError(s *doctree.Sentence, from, to int, msg string) ValidationError {
	start := s.Offset(from)
	end := s.Offset(to)
	return ValidationError{
		Message:   msg,
		Validator: b.name,
		Severity:  b.severity,
		Start:     &start,
		End:       &end,
		Sentence:  s.Content,
	}
}
