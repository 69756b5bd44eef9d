package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

func para(sentences ...string) *doctree.Paragraph {
	p := &doctree.Paragraph{}
	for i, s := range sentences {
		p.Sentences = append(p.Sentences, &doctree.Sentence{Content: s, Start: doctree.Position{Line: i + 1}})
	}
	return p
}

func initialize(t *testing.T, v validator.Validator, attrs map[string]string) {
	t.Helper()
	require.NoError(t, v.Initialize(config.NewNode("Test", attrs), validator.Resources{}))
}

func TestSectionLength(t *testing.T) {
	v := &SectionLength{}
	initialize(t, v, map[string]string{"max_char_num": "10"})

	short := &doctree.Section{Header: "A", Paragraphs: []*doctree.Paragraph{para("12345", "12345")}}
	assert.Empty(t, v.ValidateSection(short))

	long := &doctree.Section{Header: "B", HeaderLine: 4, Paragraphs: []*doctree.Paragraph{para("123456", "123456")}}
	errs := v.ValidateSection(long)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Start.Line)
	assert.Equal(t, "B", errs[0].Sentence)
	assert.Contains(t, errs[0].Message, "(12)")
}

func TestSectionLength_IgnoresNestedSections(t *testing.T) {
	v := &SectionLength{}
	initialize(t, v, map[string]string{"max_char_num": "5"})

	sec := &doctree.Section{
		Paragraphs: []*doctree.Paragraph{para("abc")},
		Sections: []*doctree.Section{
			{Paragraphs: []*doctree.Paragraph{para(strings.Repeat("x", 50))}},
		},
	}
	assert.Empty(t, v.ValidateSection(sec))
}

func TestSectionLength_NoHeaderLine(t *testing.T) {
	v := &SectionLength{}
	initialize(t, v, map[string]string{"max_char_num": "1"})
	errs := v.ValidateSection(&doctree.Section{Paragraphs: []*doctree.Paragraph{para("abc")}})
	require.Len(t, errs, 1)
	assert.Nil(t, errs[0].Start)
}

func TestMaxParagraphNumber(t *testing.T) {
	v := &MaxParagraphNumber{}
	initialize(t, v, map[string]string{"max_paragraph_num": "2"})

	sec := &doctree.Section{Paragraphs: []*doctree.Paragraph{para("a."), para("b.")}}
	assert.Empty(t, v.ValidateSection(sec))

	sec.Paragraphs = append(sec.Paragraphs, para("c."))
	assert.Len(t, v.ValidateSection(sec), 1)
	assert.Empty(t, v.ValidateSection(&doctree.Section{}), "sections without paragraphs are fine")
}

func TestParagraphStartWith(t *testing.T) {
	v := &ParagraphStartWith{}
	initialize(t, v, map[string]string{"start_from": " "})

	sec := &doctree.Section{Paragraphs: []*doctree.Paragraph{
		para(" Indented. Second."),
		para("Not indented."),
		{},
	}}
	errs := v.ValidateSection(sec)
	require.Len(t, errs, 1)
	assert.Equal(t, "Not indented.", errs[0].Sentence)
}

func TestParagraphStartWith_SeesIndentation(t *testing.T) {
	v := &ParagraphStartWith{}
	initialize(t, v, map[string]string{"start_from": "　"})

	indented := para("これは段落です。")
	indented.Indent = "　"
	sec := &doctree.Section{Paragraphs: []*doctree.Paragraph{
		indented,
		para("字下げなし。"),
	}}
	errs := v.ValidateSection(sec)
	require.Len(t, errs, 1)
	assert.Equal(t, "字下げなし。", errs[0].Sentence)
}

func TestParagraphStartWith_DisabledByDefault(t *testing.T) {
	v := &ParagraphStartWith{}
	initialize(t, v, nil)
	assert.Empty(t, v.ValidateSection(&doctree.Section{Paragraphs: []*doctree.Paragraph{para("x")}}))
}

func TestCloneKeepsConfiguration(t *testing.T) {
	v := &MaxParagraphNumber{}
	initialize(t, v, map[string]string{"max_paragraph_num": "1", "level": "info"})

	c := v.Clone().(*MaxParagraphNumber)
	assert.NotSame(t, v, c)
	assert.True(t, v.Equal(c))
	assert.Equal(t, validator.SeverityInfo, c.Severity())
}
