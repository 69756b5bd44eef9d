package sentence

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

const (
	defaultMaxLength = 120
	defaultMaxCommas = 3
)

// SentenceLength flags sentences longer than max_len runes.
type SentenceLength struct {
	validator.Base
	max int
}

func NewSentenceLength() validator.Validator {
	return &SentenceLength{}
}

func (v *SentenceLength) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	n, err := v.IntAttribute("max_len", defaultMaxLength)
	if err != nil {
		return err
	}
	if n <= 0 {
		return &validator.ConfigError{Validator: v.Name(), Err: fmt.Errorf("max_len must be positive, got %d", n)}
	}
	v.max = n
	return nil
}

func (v *SentenceLength) ValidateSentence(s *doctree.Sentence) []validator.ValidationError {
	if n := s.RuneCount(); n > v.max {
		return []validator.ValidationError{
			v.NewSentenceError(s, fmt.Sprintf("The length of the sentence (%d) exceeds the maximum of %d", n, v.max)),
		}
	}
	return nil
}

func (v *SentenceLength) Clone() validator.Validator {
	return &SentenceLength{Base: v.CloneBase(), max: v.max}
}

func (v *SentenceLength) Equal(other validator.Validator) bool {
	o, ok := other.(*SentenceLength)
	return ok && o.max == v.max && o.Severity() == v.Severity()
}

// CommaNumber flags sentences with more than max_num commas. The comma is
// taken from the character table, so full-width commas count for Japanese.
type CommaNumber struct {
	validator.Base
	max int
}

func NewCommaNumber() validator.Validator {
	return &CommaNumber{}
}

func (v *CommaNumber) Initialize(node *config.Node, res validator.Resources) error {
	if err := v.Configure(node, res); err != nil {
		return err
	}
	n, err := v.IntAttribute("max_num", defaultMaxCommas)
	if err != nil {
		return err
	}
	v.max = n
	return nil
}

func (v *CommaNumber) ValidateSentence(s *doctree.Sentence) []validator.ValidationError {
	comma := v.Chars().Value(chartable.Comma)
	if comma == "" {
		return nil
	}
	if n := strings.Count(s.Content, comma); n > v.max {
		return []validator.ValidationError{
			v.NewSentenceError(s, fmt.Sprintf("The number of commas (%d) exceeds the maximum of %d", n, v.max)),
		}
	}
	return nil
}

func (v *CommaNumber) Clone() validator.Validator {
	return &CommaNumber{Base: v.CloneBase(), max: v.max}
}

func (v *CommaNumber) Equal(other validator.Validator) bool {
	o, ok := other.(*CommaNumber)
	return ok && o.max == v.max && o.Severity() == v.Severity()
}
