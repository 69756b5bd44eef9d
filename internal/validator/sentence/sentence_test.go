package sentence

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newSuggest(t *testing.T, dict string) *SuggestExpression {
	t.Helper()
	path := writeFile(t, "dict.tsv", dict)
	v := &SuggestExpression{}
	require.NoError(t, v.Initialize(config.NewNode("SuggestExpression", map[string]string{"dict": path}), validator.Resources{}))
	return v
}

func sentence(content string) *doctree.Sentence {
	return &doctree.Sentence{Content: content, Start: doctree.Position{Line: 1}}
}

func TestSuggestExpression_FlagsEachKeyOnce(t *testing.T) {
	v := newSuggest(t, "teh\tthe\nadn\tand\n")

	errs := v.ValidateSentence(sentence("I teh saw adn left."))
	require.Len(t, errs, 2)

	assert.Equal(t, `Found invalid expression "adn", use "and" instead`, errs[0].Message)
	assert.Equal(t, doctree.Position{Line: 1, Offset: 10}, *errs[0].Start)
	assert.Equal(t, doctree.Position{Line: 1, Offset: 13}, *errs[0].End)

	assert.Equal(t, `Found invalid expression "teh", use "the" instead`, errs[1].Message)
	assert.Equal(t, doctree.Position{Line: 1, Offset: 2}, *errs[1].Start)
	assert.Equal(t, "SuggestExpression", errs[1].Validator)
	assert.Equal(t, validator.SeverityError, errs[1].Severity)
}

func TestSuggestExpression_OnlyFirstOccurrence(t *testing.T) {
	v := newSuggest(t, "teh\tthe\n")
	errs := v.ValidateSentence(sentence("teh cat and teh dog"))
	require.Len(t, errs, 1)
	assert.Equal(t, 0, errs[0].Start.Offset)
}

func TestSuggestExpression_OverlappingKeysAreKept(t *testing.T) {
	v := newSuggest(t, "can not\tcannot\nnot be\tmay not be\n")
	errs := v.ValidateSentence(sentence("It can not be done."))
	assert.Len(t, errs, 2)
}

func TestSuggestExpression_EmptyDictionary(t *testing.T) {
	v := newSuggest(t, "# nothing here\n\n")
	assert.Empty(t, v.ValidateSentence(sentence("Anything at all.")))
}

func TestSuggestExpression_RuneOffsets(t *testing.T) {
	v := newSuggest(t, "しかし\tだが\n")
	errs := v.ValidateSentence(sentence("これは、しかし違う。"))
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Start.Offset)
	assert.Equal(t, 7, errs[0].End.Offset)
}

func TestSuggestExpression_MissingDictAttribute(t *testing.T) {
	v := &SuggestExpression{}
	err := v.Initialize(config.NewNode("SuggestExpression", nil), validator.Resources{})

	var missing *validator.MissingAttributeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "dict", missing.Attribute)
}

func TestSuggestExpression_UnreadableDictionary(t *testing.T) {
	v := &SuggestExpression{}
	node := config.NewNode("SuggestExpression", map[string]string{"dict": filepath.Join(t.TempDir(), "missing.tsv")})
	err := v.Initialize(node, validator.Resources{})

	var cfgErr *validator.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "SuggestExpression", cfgErr.Validator)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSuggestExpression_ResolvesRelativeDictionary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d.tsv"), []byte("teh\tthe\n"), 0o644))

	v := &SuggestExpression{}
	res := validator.Resources{Resolve: func(p string) string { return filepath.Join(dir, p) }}
	require.NoError(t, v.Initialize(config.NewNode("SuggestExpression", map[string]string{"dict": "d.tsv"}), res))
	assert.Len(t, v.ValidateSentence(sentence("teh")), 1)
}

func TestSuggestExpression_Equal(t *testing.T) {
	a := &SuggestExpression{}
	a.SetDictionary(map[string]string{"x": "y"})
	b := &SuggestExpression{}
	b.SetDictionary(map[string]string{"x": "y"})
	c := &SuggestExpression{}
	c.SetDictionary(map[string]string{"x": "z"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(&SentenceLength{}))

	warn := &SuggestExpression{}
	require.NoError(t, warn.Configure(config.NewNode("SuggestExpression", map[string]string{"level": "warning"}), validator.Resources{}))
	warn.SetDictionary(map[string]string{"x": "y"})
	assert.False(t, a.Equal(warn), "same dictionary at another level is a distinct entry")
}

func TestSuggestExpression_ClonesAgreeUnderConcurrency(t *testing.T) {
	v := newSuggest(t, "teh\tthe\nadn\tand\nrecieve\treceive\n")
	inputs := []string{"I teh saw adn left.", "We recieve mail.", "Nothing wrong here.", "adn teh recieve"}

	want := make([][]validator.ValidationError, len(inputs))
	for i, in := range inputs {
		want[i] = v.ValidateSentence(sentence(in))
	}

	const workers = 8
	got := make([][][]validator.ValidationError, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(clone validator.Validator) {
			defer wg.Done()
			sv := clone.(validator.SentenceValidator)
			for _, in := range inputs {
				got[w] = append(got[w], sv.ValidateSentence(sentence(in)))
			}
		}(v.Clone())
	}
	wg.Wait()

	for w := range workers {
		assert.Equal(t, want, got[w], "worker %d", w)
	}
}

func TestInvalidExpression_FlagsEveryOccurrence(t *testing.T) {
	path := writeFile(t, "words.txt", "very\n# comment\nreally\n")
	v := &InvalidExpression{}
	require.NoError(t, v.Initialize(config.NewNode("InvalidExpression", map[string]string{"dict": path}), validator.Resources{}))

	errs := v.ValidateSentence(sentence("It is very very really good."))
	require.Len(t, errs, 3)
	assert.Equal(t, `Found invalid expression "really"`, errs[0].Message)
	assert.Equal(t, 6, errs[1].Start.Offset)
	assert.Equal(t, 11, errs[2].Start.Offset)
}

func TestSentenceLength(t *testing.T) {
	v := &SentenceLength{}
	require.NoError(t, v.Initialize(config.NewNode("SentenceLength", map[string]string{"max_len": "10"}), validator.Resources{}))

	assert.Empty(t, v.ValidateSentence(sentence("Short one.")))
	errs := v.ValidateSentence(sentence("This one is too long."))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "(21)")
	assert.Nil(t, errs[0].End)

	err := (&SentenceLength{}).Initialize(config.NewNode("SentenceLength", map[string]string{"max_len": "0"}), validator.Resources{})
	assert.Error(t, err)
	err = (&SentenceLength{}).Initialize(config.NewNode("SentenceLength", map[string]string{"max_len": "ten"}), validator.Resources{})
	var cfgErr *validator.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSentenceLength_Default(t *testing.T) {
	v := &SentenceLength{}
	require.NoError(t, v.Initialize(config.NewNode("SentenceLength", nil), validator.Resources{}))
	assert.Equal(t, defaultMaxLength, v.max)
}

func TestCommaNumber(t *testing.T) {
	v := &CommaNumber{}
	require.NoError(t, v.Initialize(config.NewNode("CommaNumber", map[string]string{"max_num": "2", "level": "warning"}), validator.Resources{}))

	assert.Empty(t, v.ValidateSentence(sentence("a, b, c")))
	errs := v.ValidateSentence(sentence("a, b, c, d"))
	require.Len(t, errs, 1)
	assert.Equal(t, validator.SeverityWarning, errs[0].Severity)
}

func TestCommaNumber_UsesCharacterTable(t *testing.T) {
	ja, err := chartable.ForLanguage("ja")
	require.NoError(t, err)

	v := &CommaNumber{}
	require.NoError(t, v.Initialize(config.NewNode("CommaNumber", map[string]string{"max_num": "1"}), validator.Resources{Chars: ja}))

	assert.Empty(t, v.ValidateSentence(sentence("a, b, c")), "ASCII commas are not counted for Japanese")
	assert.Len(t, v.ValidateSentence(sentence("これ、それ、あれ")), 1)
}
