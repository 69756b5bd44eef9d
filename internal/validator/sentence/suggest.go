// Package sentence holds validators that inspect one sentence at a time.
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

// SuggestExpression flags expressions listed in a dictionary and proposes
// the configured replacement.
//
// Attributes:
//
//	dict  required, path to a tab-separated "expression<TAB>suggestion" file
type SuggestExpression struct {
	validator.Base
	synonyms map[string]string
	keys     []string
}

func NewSuggestExpression() validator.Validator {
	return &SuggestExpression{}
}

func (v *SuggestExpression) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	path, err := v.RequireAttribute("dict")
	if err != nil {
		return err
	}
	synonyms, _, err := dictionary.OpenKeyValue(res.ResolvePath(path))
	if err != nil {
		return &validator.ConfigError{Validator: v.Name(), Err: err}
	}
	v.SetDictionary(synonyms)
	return nil
}

// SetDictionary replaces the dictionary. It must not be called once the
// validator is in use.
func (v *SuggestExpression) SetDictionary(synonyms map[string]string) {
	v.synonyms = synonyms
	v.keys = slices.Sorted(maps.Keys(synonyms))
}

func (v *SuggestExpression) ValidateSentence(s *doctree.Sentence) []validator.ValidationError {
	var errs []validator.ValidationError
	for _, key := range v.keys {
		if key == "" {
			continue
		}
		i := strings.Index(s.Content, key)
		if i < 0 {
			continue
		}
		msg := fmt.Sprintf("Found invalid expression %q, use %q instead", key, v.synonyms[key])
		errs = append(errs, v.NewSpanError(s, i, i+len(key), msg))
	}
	return errs
}

// Clone shares the dictionary, which is never written after Initialize.
func (v *SuggestExpression) Clone() validator.Validator {
	return &SuggestExpression{Base: v.CloneBase(), synonyms: v.synonyms, keys: v.keys}
}

// Equal compares the dictionary and the severity. Two entries that load
// the same dictionary at different levels are both kept by a Set.
func (v *SuggestExpression) Equal(other validator.Validator) bool {
	o, ok := other.(*SuggestExpression)
	return ok && o.Severity() == v.Severity() && maps.Equal(o.synonyms, v.synonyms)
}
