// Package builtin wires the bundled validators into a registry.
package builtin

import (
	"github.com/dgallion1/docinspect/internal/validator"
	"github.com/dgallion1/docinspect/internal/validator/document"
	"github.com/dgallion1/docinspect/internal/validator/section"
	"github.com/dgallion1/docinspect/internal/validator/sentence"
)

// Registry returns a new registry holding every bundled validator.
func Registry() *validator.Registry {
	reg := validator.NewRegistry()

	reg.Register("SuggestExpression", validator.Constructor(sentence.NewSuggestExpression))
	reg.Register("InvalidExpression", validator.Constructor(sentence.NewInvalidExpression))
	reg.Register("SentenceLength", validator.Constructor(sentence.NewSentenceLength))
	reg.Register("CommaNumber", validator.Constructor(sentence.NewCommaNumber))

	reg.Register("SectionLength", validator.Constructor(section.NewSectionLength))
	reg.Register("MaxParagraphNumber", validator.Constructor(section.NewMaxParagraphNumber))
	reg.Register("ParagraphStartWith", validator.Constructor(section.NewParagraphStartWith))

	reg.Register("DuplicateSection", validator.Constructor(document.NewDuplicateSection))
	reg.Register("SentenceIterator", document.NewSentenceIterator(reg))

	return reg
}
