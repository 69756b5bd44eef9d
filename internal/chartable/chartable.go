// Package chartable holds the symbols validators and the sentence splitter
// treat as punctuation. A Table is built once and shared read-only.
package chartable

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"
)

// Symbol names.
const (
	FullStop         = "FULL_STOP"
	QuestionMark     = "QUESTION_MARK"
	ExclamationMark  = "EXCLAMATION_MARK"
	Comma            = "COMMA"
	LeftParenthesis  = "LEFT_PARENTHESIS"
	RightParenthesis = "RIGHT_PARENTHESIS"
	LeftQuote        = "LEFT_QUOTATION_MARK"
	RightQuote       = "RIGHT_QUOTATION_MARK"
)

// Symbol is one configured character.
type Symbol struct {
	Name  string
	Value string
	// NeedSpace reports whether the symbol is followed by a space in
	// well-formed text (true for Latin punctuation, false for CJK).
	NeedSpace bool
}

// Table maps symbol names to characters for one language.
type Table struct {
	lang    string
	symbols map[string]Symbol
}

var english = map[string]Symbol{
	FullStop:         {Name: FullStop, Value: ".", NeedSpace: true},
	QuestionMark:     {Name: QuestionMark, Value: "?", NeedSpace: true},
	ExclamationMark:  {Name: ExclamationMark, Value: "!", NeedSpace: true},
	Comma:            {Name: Comma, Value: ",", NeedSpace: true},
	LeftParenthesis:  {Name: LeftParenthesis, Value: "("},
	RightParenthesis: {Name: RightParenthesis, Value: ")", NeedSpace: true},
	LeftQuote:        {Name: LeftQuote, Value: "\""},
	RightQuote:       {Name: RightQuote, Value: "\"", NeedSpace: true},
}

var japanese = map[string]Symbol{
	FullStop:         {Name: FullStop, Value: "。"},
	QuestionMark:     {Name: QuestionMark, Value: "？"},
	ExclamationMark:  {Name: ExclamationMark, Value: "！"},
	Comma:            {Name: Comma, Value: "、"},
	LeftParenthesis:  {Name: LeftParenthesis, Value: "（"},
	RightParenthesis: {Name: RightParenthesis, Value: "）"},
	LeftQuote:        {Name: LeftQuote, Value: "「"},
	RightQuote:       {Name: RightQuote, Value: "」"},
}

// Default returns the English table.
func Default() *Table {
	return &Table{lang: "en", symbols: maps.Clone(english)}
}

// ForLanguage returns the table for a BCP 47 language tag. Unknown
// languages fall back to English.
func ForLanguage(tag string) (*Table, error) {
	if tag == "" {
		return Default(), nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", tag, err)
	}
	base, _ := t.Base()
	switch base.String() {
	case "ja", "zh":
		return &Table{lang: base.String(), symbols: maps.Clone(japanese)}, nil
	default:
		return &Table{lang: base.String(), symbols: maps.Clone(english)}, nil
	}
}

// Language returns the base language the table was built for.
func (t *Table) Language() string {
	return t.lang
}

// Get returns the symbol registered under name.
func (t *Table) Get(name string) (Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Value returns the character for name, or "" when unknown.
func (t *Table) Value(name string) string {
	return t.symbols[name].Value
}

// Override returns a copy of the table with the given symbols replaced.
// The receiver is left untouched.
func (t *Table) Override(overrides map[string]string) *Table {
	out := &Table{lang: t.lang, symbols: maps.Clone(t.symbols)}
	for name, value := range overrides {
		s := out.symbols[name]
		s.Name = name
		s.Value = value
		out.symbols[name] = s
	}
	return out
}

// Terminators returns the sentence-ending symbols, longest first.
func (t *Table) Terminators() []Symbol {
	var out []Symbol
	for _, name := range []string{FullStop, QuestionMark, ExclamationMark} {
		if s, ok := t.symbols[name]; ok && s.Value != "" {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b Symbol) int { return len(b.Value) - len(a.Value) })
	return out
}
