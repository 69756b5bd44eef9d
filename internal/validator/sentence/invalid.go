package sentence

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/dictionary"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

// InvalidExpression flags every occurrence of a listed expression.
//
// Attributes:
//
//	dict  required, path to a word list, one expression per line
type InvalidExpression struct {
	validator.Base
	words []string
}

func NewInvalidExpression() validator.Validator {
	return &InvalidExpression{}
}

func (v *InvalidExpression) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	path, err := v.RequireAttribute("dict")
	if err != nil {
		return err
	}
	words, _, err := dictionary.OpenWordList(res.ResolvePath(path))
	if err != nil {
		return &validator.ConfigError{Validator: v.Name(), Err: err}
	}
	v.words = slices.Sorted(maps.Keys(words))
	return nil
}

func (v *InvalidExpression) ValidateSentence(s *doctree.Sentence) []validator.ValidationError {
	var errs []validator.ValidationError
	for _, w := range v.words {
		from := 0
		for {
			i := strings.Index(s.Content[from:], w)
			if i < 0 {
				break
			}
			i += from
			errs = append(errs, v.NewSpanError(s, i, i+len(w), fmt.Sprintf("Found invalid expression %q", w)))
			from = i + len(w)
		}
	}
	return errs
}

func (v *InvalidExpression) Clone() validator.Validator {
	return &InvalidExpression{Base: v.CloneBase(), words: v.words}
}

func (v *InvalidExpression) Equal(other validator.Validator) bool {
	o, ok := other.(*InvalidExpression)
	return ok && o.Severity() == v.Severity() && slices.Equal(o.words, v.words)
}
