package errors

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_FirstLinesAreCodeAndMessage(t *testing.T) {
	out := Format(New(EUsage, "bad args"), PrintOptions{})
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "error_code: E_USAGE", lines[0])
	assert.Equal(t, "bad args", lines[1])
}

func TestFormat_ContextKeysInOrder(t *testing.T) {
	err := NewWithDetails(EInputDirNotFound, "input directory not found: /r/roles", map[string]string{
		"dir":  "/r/roles",
		"root": "/r",
		"hint": "pass --input-dir or --root",
	})

	want := "error_code: E_INPUT_DIR_NOT_FOUND\n" +
		"input directory not found: /r/roles\n" +
		"\n" +
		"root: /r\n" +
		"dir: /r/roles\n" +
		"\n" +
		"hint: pass --input-dir or --root\n"
	assert.Equal(t, want, Format(err, PrintOptions{}))
}

func TestFormat_VerboseShowsExtraAndCause(t *testing.T) {
	err := WrapWithDetails(EWriteFailed, "failed to write manifest", errors.New("disk full"), map[string]string{
		"output": "/r/m.jsonl",
		"temp":   "/r/.m.jsonl.tmp-1",
	})

	quiet := Format(err, PrintOptions{})
	assert.NotContains(t, quiet, "extra:")
	assert.NotContains(t, quiet, "disk full")

	loud := Format(err, PrintOptions{Verbose: true})
	assert.Contains(t, loud, "output: /r/m.jsonl\n")
	assert.Contains(t, loud, "extra:\n  temp: /r/.m.jsonl.tmp-1\n")
	assert.Contains(t, loud, "cause: disk full\n")
}

func TestFormat_SanitizesMultilineValues(t *testing.T) {
	err := NewWithDetails(EInvalidConfig, "bad config", map[string]string{
		"config": "line1\r\nline2\n",
	})
	assert.Contains(t, Format(err, PrintOptions{}), "config: line1\\nline2\n")
}

func TestFormat_TruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", maxValueLen+10)
	err := NewWithDetails(EInvalidConfig, "bad config", map[string]string{"config": long})
	assert.Contains(t, Format(err, PrintOptions{}), "config: "+strings.Repeat("x", maxValueLen)+"…\n")
}

func TestFormat_TruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; the cut at maxValueLen lands inside the last one.
	long := strings.Repeat("x", maxValueLen-1) + "éé"
	out := sanitizeValue(long, maxValueLen)
	assert.Equal(t, strings.Repeat("x", maxValueLen-1)+"…", out)
	assert.True(t, utf8.ValidString(out))
}

func TestPrintWithOptions_PlainError(t *testing.T) {
	var buf bytes.Buffer
	PrintWithOptions(&buf, errors.New("boom"), PrintOptions{Verbose: true})
	assert.Equal(t, "boom\n", buf.String())
}
