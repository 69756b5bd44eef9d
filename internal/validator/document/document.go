// Package document holds validators that inspect a whole document.
package document

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

// DuplicateSection flags section headers that appear more than once in a
// document. Headers are compared after trimming and case folding.
type DuplicateSection struct {
	validator.Base
}

func NewDuplicateSection() validator.Validator {
	return &DuplicateSection{}
}

func (v *DuplicateSection) Initialize(node *config.Node, res validator.Resources) error {
	return v.Configure(node, res)
}

func (v *DuplicateSection) ValidateDocument(doc *doctree.Document) []validator.ValidationError {
	var errs []validator.ValidationError
	seen := make(map[string]*doctree.Section)
	doc.Walk(func(sec *doctree.Section) {
		key := strings.ToLower(strings.TrimSpace(sec.Header))
		if key == "" {
			return
		}
		first, dup := seen[key]
		if !dup {
			seen[key] = sec
			return
		}
		e := v.NewError(fmt.Sprintf("Section %q duplicates the section on line %d", sec.Header, first.HeaderLine))
		if sec.HeaderLine > 0 {
			e.Start = &doctree.Position{Line: sec.HeaderLine}
		}
		e.Sentence = sec.Header
		errs = append(errs, e)
	})
	return errs
}

func (v *DuplicateSection) Clone() validator.Validator {
	return &DuplicateSection{Base: v.CloneBase()}
}

func (v *DuplicateSection) Equal(other validator.Validator) bool {
	o, ok := other.(*DuplicateSection)
	return ok && o.Severity() == v.Severity()
}

// SentenceIterator runs its child sentence validators over every sentence
// of the document. It keeps older configuration files, which nest sentence
// rules under one node, working unchanged. A child that panics on one
// sentence loses only that result.
type SentenceIterator struct {
	validator.Base
	children []validator.SentenceValidator
	log      *slog.Logger
}

// NewSentenceIterator returns a factory that builds children through reg.
func NewSentenceIterator(reg *validator.Registry) validator.Factory {
	return func(node *config.Node, res validator.Resources) (validator.Validator, error) {
		v := &SentenceIterator{log: res.Log}
		if v.log == nil {
			v.log = slog.New(slog.DiscardHandler)
		}
		if err := v.Configure(node, res); err != nil {
			return nil, err
		}
		for _, child := range node.Children {
			built, err := reg.Build(child, res)
			if err != nil {
				return nil, err
			}
			sv, ok := built.(validator.SentenceValidator)
			if !ok {
				return nil, &validator.ConfigError{
					Validator: v.Name(),
					Err:       fmt.Errorf("child %q is not a sentence validator", child.Name),
				}
			}
			v.children = append(v.children, sv)
		}
		return v, nil
	}
}

// Initialize only reads the common attributes; children are built by the
// factory returned from NewSentenceIterator.
func (v *SentenceIterator) Initialize(node *config.Node, res validator.Resources) error {
	return v.Configure(node, res)
}

// Children returns the wrapped validators in configuration order.
func (v *SentenceIterator) Children() []validator.SentenceValidator {
	return v.children
}

func (v *SentenceIterator) ValidateDocument(doc *doctree.Document) []validator.ValidationError {
	var errs []validator.ValidationError
	doc.Walk(func(sec *doctree.Section) {
		for _, s := range sec.Sentences() {
			for _, child := range v.children {
				errs = append(errs, validator.Guard(v.log, child, "sentence", s.Content, func() []validator.ValidationError {
					return child.ValidateSentence(s)
				})...)
			}
		}
	})
	return errs
}

func (v *SentenceIterator) Clone() validator.Validator {
	out := &SentenceIterator{Base: v.CloneBase(), log: v.log}
	for _, c := range v.children {
		out.children = append(out.children, c.Clone().(validator.SentenceValidator))
	}
	return out
}
