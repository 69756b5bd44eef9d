package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/validator"
)

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{
		"CommaNumber",
		"DuplicateSection",
		"InvalidExpression",
		"MaxParagraphNumber",
		"ParagraphStartWith",
		"SectionLength",
		"SentenceIterator",
		"SentenceLength",
		"SuggestExpression",
	}, Registry().Names())
}

func TestRegistryLoadsTreeFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict.tsv"), []byte("teh\tthe\n"), 0o644))
	cfg := `
validators:
  - name: SuggestExpression
    attributes:
      dict: dict.tsv
  - name: SentenceLength
    attributes:
      max_len: "80"
  - name: SectionLength
  - name: DuplicateSection
`
	path := filepath.Join(dir, "docinspect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	tree, err := config.LoadTree(path)
	require.NoError(t, err)

	set, err := Registry().Load(tree.Root, validator.Resources{Resolve: tree.Resolve})
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())
	assert.Len(t, set.Sentences(), 2)
	assert.Len(t, set.Sections(), 1)
	assert.Len(t, set.Documents(), 1)
}
