package report

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docinspect/internal/doctree"
	"github.com/dgallion1/docinspect/internal/validator"
)

func findings() []validator.ValidationError {
	pos := doctree.Position{Line: 2, Offset: 4}
	return []validator.ValidationError{
		{Message: "too long", Validator: "SentenceLength", Severity: validator.SeverityError, Start: &pos, File: "a.md"},
		{Message: "dup", Validator: "DuplicateSection", Severity: validator.SeverityWarning},
	}
}

func run(t *testing.T, s Sink, errs []validator.ValidationError) {
	t.Helper()
	require.NoError(t, s.FlushHeader())
	for _, e := range errs {
		require.NoError(t, s.Flush(e))
	}
	require.NoError(t, s.FlushFooter())
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewPlain(&buf, false), findings())

	assert.Equal(t,
		"a.md:2:4: [error] SentenceLength: too long\n"+
			"[warning] DuplicateSection: dup\n"+
			"2 finding(s): 1 error(s), 1 warning(s), 0 info\n",
		buf.String())
}

func TestPlain_NoFindingsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewPlain(&buf, false), nil)
	assert.Empty(t, buf.String())
}

func TestPlain_ColorKeepsMessage(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewPlain(&buf, true), findings()[:1])
	assert.Contains(t, buf.String(), "SentenceLength: too long")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewJSON(&buf), findings())

	var got []validator.ValidationError
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, findings(), got)
}

func TestJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	run(t, NewJSON(&buf), nil)
	assert.Equal(t, "[]\n", buf.String())
}

func TestForFormat(t *testing.T) {
	var buf bytes.Buffer

	s, err := ForFormat("json", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSON{}, s)

	s, err = ForFormat("", &buf)
	require.NoError(t, err)
	assert.IsType(t, &Plain{}, s)
	assert.False(t, s.(*Plain).color, "buffers are not terminals")

	_, err = ForFormat("xml", &buf)
	assert.Error(t, err)
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	run(t, c, findings())
	assert.Equal(t, 1, c.Headers)
	assert.Equal(t, 1, c.Footers)
	assert.Len(t, c.Findings, 2)
}
