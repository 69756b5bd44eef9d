package segment

import (
	"testing"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/doctree"
)

func contents(sents []*doctree.Sentence) []string {
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Content
	}
	return out
}

func TestSentences_BasicSplitting(t *testing.T) {
	sents := Sentences("The quick fox. Is it lazy? No! Done", doctree.Position{Line: 1}, chartable.Default())

	want := []string{"The quick fox.", "Is it lazy?", "No!", "Done"}
	got := contents(sents)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSentences_Positions(t *testing.T) {
	sents := Sentences("  One. Two.\nThree.", doctree.Position{Line: 5}, chartable.Default())
	if len(sents) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sents))
	}

	want := []doctree.Position{
		{Line: 5, Offset: 2},
		{Line: 5, Offset: 7},
		{Line: 6, Offset: 0},
	}
	for i, w := range want {
		if sents[i].Start != w {
			t.Errorf("sentence %d: expected start %+v, got %+v", i, w, sents[i].Start)
		}
	}
}

func TestSentences_DecimalIsNotATerminator(t *testing.T) {
	sents := Sentences("Version 1.5 is out. Upgrade now.", doctree.Position{Line: 1}, chartable.Default())
	if len(sents) != 2 {
		t.Fatalf("expected 2 sentences, got %v", contents(sents))
	}
	if sents[0].Content != "Version 1.5 is out." {
		t.Errorf("unexpected first sentence %q", sents[0].Content)
	}
}

func TestSentences_Japanese(t *testing.T) {
	tbl, err := chartable.ForLanguage("ja")
	if err != nil {
		t.Fatal(err)
	}
	sents := Sentences("これはペンです。あれは本です。", doctree.Position{Line: 1}, tbl)
	if len(sents) != 2 {
		t.Fatalf("expected 2 sentences, got %v", contents(sents))
	}
	if sents[1].Start.Offset != 8 {
		t.Errorf("expected second sentence at rune 8, got %d", sents[1].Start.Offset)
	}
}

func TestSentences_Empty(t *testing.T) {
	if sents := Sentences("   \n  ", doctree.Position{Line: 1}, nil); len(sents) != 0 {
		t.Errorf("expected no sentences, got %v", contents(sents))
	}
}

func TestParagraphs_SplitsOnBlankLines(t *testing.T) {
	block := doctree.Block{Text: "First para. Still first.\n\n\nSecond para.\n   \nThird.", Line: 10}
	paras := Paragraphs(block, chartable.Default())

	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paras))
	}
	if len(paras[0].Sentences) != 2 {
		t.Errorf("expected 2 sentences in first paragraph, got %d", len(paras[0].Sentences))
	}
	if got := paras[1].Sentences[0].Start.Line; got != 13 {
		t.Errorf("expected second paragraph on line 13, got %d", got)
	}
	if got := paras[2].Sentences[0].Start.Line; got != 15 {
		t.Errorf("expected third paragraph on line 15, got %d", got)
	}
}

func TestParagraphs_KeepsIndentation(t *testing.T) {
	tbl, err := chartable.ForLanguage("ja")
	if err != nil {
		t.Fatal(err)
	}
	paras := Paragraphs(doctree.Block{Text: "　これは段落です。\n続きです。\n\n次の段落です。", Line: 1}, tbl)
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	if paras[0].Indent != "　" {
		t.Errorf("expected full-width indent, got %q", paras[0].Indent)
	}
	if paras[0].Sentences[0].Start.Offset != 1 {
		t.Errorf("expected first sentence at rune 1, got %d", paras[0].Sentences[0].Start.Offset)
	}
	if paras[1].Indent != "" {
		t.Errorf("expected no indent, got %q", paras[1].Indent)
	}
}

func TestParagraphs_NoLineInformation(t *testing.T) {
	paras := Paragraphs(doctree.Block{Text: "A.\n\nB."}, chartable.Default())
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	if paras[1].Sentences[0].Start.Line != 0 {
		t.Errorf("expected unknown line 0, got %d", paras[1].Sentences[0].Start.Line)
	}
}

func TestDocument_SegmentsNestedSections(t *testing.T) {
	doc := &doctree.Document{
		Sections: []*doctree.Section{
			{
				Header: "Chapter 1",
				Blocks: []doctree.Block{{Text: "Intro. More intro.", Line: 2}},
				Sections: []*doctree.Section{
					{Header: "Section 1.1", Blocks: []doctree.Block{{Text: "Body.", Line: 6}}},
				},
			},
			{Header: "Empty"},
		},
	}
	Document(doc, nil)

	ch := doc.Sections[0]
	if len(ch.Paragraphs) != 1 || len(ch.Paragraphs[0].Sentences) != 2 {
		t.Fatalf("unexpected chapter paragraphs: %+v", ch.Paragraphs)
	}
	sub := ch.Sections[0]
	if len(sub.Paragraphs) != 1 || sub.Paragraphs[0].Sentences[0].Content != "Body." {
		t.Fatalf("unexpected subsection paragraphs: %+v", sub.Paragraphs)
	}
	if len(doc.Sections[1].Paragraphs) != 0 {
		t.Errorf("expected no paragraphs for empty section")
	}
}

func TestDocument_Idempotent(t *testing.T) {
	doc := &doctree.Document{Sections: []*doctree.Section{
		{Blocks: []doctree.Block{{Text: "One. Two.", Line: 1}}},
	}}
	Document(doc, nil)
	Document(doc, nil)
	if n := len(doc.Sections[0].Paragraphs); n != 1 {
		t.Errorf("expected 1 paragraph after segmenting twice, got %d", n)
	}
}
