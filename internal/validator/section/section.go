// Package section holds validators that inspect one section, excluding its
// nested sections.
package section

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

const (
	defaultMaxCharNum      = 1000
	defaultMaxParagraphNum = 6
)

// SectionLength flags sections whose sentences add up to more than
// max_char_num characters.
type SectionLength struct {
	validator.Base
	max int
}

func NewSectionLength() validator.Validator {
	return &SectionLength{}
}

func (v *SectionLength) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	n, err := v.IntAttribute("max_char_num", defaultMaxCharNum)
	if err != nil {
		return err
	}
	v.max = n
	return nil
}

func (v *SectionLength) ValidateSection(sec *doctree.Section) []validator.ValidationError {
	total := 0
	for _, s := range sec.Sentences() {
		total += s.RuneCount()
	}
	if total <= v.max {
		return nil
	}
	return []validator.ValidationError{
		headerError(&v.Base, sec, fmt.Sprintf("The number of characters in the section (%d) exceeds the maximum of %d", total, v.max)),
	}
}

func (v *SectionLength) Clone() validator.Validator {
	return &SectionLength{Base: v.CloneBase(), max: v.max}
}

func (v *SectionLength) Equal(other validator.Validator) bool {
	o, ok := other.(*SectionLength)
	return ok && o.max == v.max && o.Severity() == v.Severity()
}

// MaxParagraphNumber flags sections with more than max_paragraph_num
// paragraphs.
type MaxParagraphNumber struct {
	validator.Base
	max int
}

func NewMaxParagraphNumber() validator.Validator {
	return &MaxParagraphNumber{}
}

func (v *MaxParagraphNumber) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	n, err := v.IntAttribute("max_paragraph_num", defaultMaxParagraphNum)
	if err != nil {
		return err
	}
	v.max = n
	return nil
}

func (v *MaxParagraphNumber) ValidateSection(sec *doctree.Section) []validator.ValidationError {
	if n := len(sec.Paragraphs); n > v.max {
		return []validator.ValidationError{
			headerError(&v.Base, sec, fmt.Sprintf("The number of paragraphs (%d) exceeds the maximum of %d", n, v.max)),
		}
	}
	return nil
}

func (v *MaxParagraphNumber) Clone() validator.Validator {
	return &MaxParagraphNumber{Base: v.CloneBase(), max: v.max}
}

func (v *MaxParagraphNumber) Equal(other validator.Validator) bool {
	o, ok := other.(*MaxParagraphNumber)
	return ok && o.max == v.max && o.Severity() == v.Severity()
}

// ParagraphStartWith checks that every paragraph opens with start_from,
// typically an indentation character. An empty start_from disables the
// check.
type ParagraphStartWith struct {
	validator.Base
	prefix string
}

func NewParagraphStartWith() validator.Validator {
	return &ParagraphStartWith{}
}

func (v *ParagraphStartWith) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	v.prefix = node.AttributeOr("start_from", "")
	return nil
}

func (v *ParagraphStartWith) ValidateSection(sec *doctree.Section) []validator.ValidationError {
	if v.prefix == "" {
		return nil
	}
	var errs []validator.ValidationError
	for _, p := range sec.Paragraphs {
		if len(p.Sentences) == 0 {
			continue
		}
		first := p.Sentences[0]
		if !strings.HasPrefix(p.Indent+first.Content, v.prefix) {
			errs = append(errs, v.NewSentenceError(first, fmt.Sprintf("Paragraph does not start with %q", v.prefix)))
		}
	}
	return errs
}

func (v *ParagraphStartWith) Clone() validator.Validator {
	return &ParagraphStartWith{Base: v.CloneBase(), prefix: v.prefix}
}

func (v *ParagraphStartWith) Equal(other validator.Validator) bool {
	o, ok := other.(*ParagraphStartWith)
	return ok && o.prefix == v.prefix && o.Severity() == v.Severity()
}

// headerError positions a finding on the section heading when its line is
// known.
func headerError(b *validator.Base, sec *doctree.Section, msg string) validator.ValidationError {
	e := b.NewError(msg)
	if sec.HeaderLine > 0 {
		e.Start = &doctree.Position{Line: sec.HeaderLine}
	}
	e.Sentence = sec.Header
	return e
}
