package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_CommentAndTrailingComma(t *testing.T) {
	doc, err := Decode([]byte("{ // comment\n \"a\": 1, }"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, doc.Keys())
	v, ok := doc.Get("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), v)
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\r\n"} {
		doc, err := Decode([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, 0, doc.Len(), "input %q should decode to an empty object", input)
	}
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	input := `{
  // Zed project settings
  "tab_size": 2,
  "format_on_save": "on",
  "file_scan_exclusions": ["**/.git", "**/node_modules/",],
  "languages": {
    "Go": {"tab_size": 4},
    "Python": {"tab_size": 4,},
  },
  "theme": null,
  "vim_mode": false,
}`
	doc, err := Decode([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"tab_size", "format_on_save", "file_scan_exclusions", "languages", "theme", "vim_mode"}, doc.Keys())

	langs, ok := doc.Get("languages")
	require.True(t, ok)
	langObj, ok := langs.(*Object)
	require.True(t, ok, "nested objects should decode as *Object")
	assert.Equal(t, []string{"Go", "Python"}, langObj.Keys())

	excl, _ := doc.Get("file_scan_exclusions")
	assert.Equal(t, []any{"**/.git", "**/node_modules/"}, excl)

	theme, ok := doc.Get("theme")
	assert.True(t, ok)
	assert.Nil(t, theme)

	vim, _ := doc.Get("vim_mode")
	assert.Equal(t, false, vim)
}

func TestDecode_DuplicateKeyLastWins(t *testing.T) {
	doc, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	v, _ := doc.Get("a")
	assert.Equal(t, json.Number("3"), v)
}

func TestDecode_KeepsNumberText(t *testing.T) {
	doc, err := Decode([]byte(`{"big": 12345678901234567890, "f": 1.50, "e": -2e3}`))
	require.NoError(t, err)

	big, _ := doc.Get("big")
	f, _ := doc.Get("f")
	e, _ := doc.Get("e")
	assert.Equal(t, json.Number("12345678901234567890"), big)
	assert.Equal(t, json.Number("1.50"), f)
	assert.Equal(t, json.Number("-2e3"), e)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "missing colon", input: "{\n  \"a\" 1\n}", wantLine: 2},
		{name: "unterminated object", input: "{\n  \"a\": 1,\n", wantLine: 3},
		{name: "garbage after value", input: "{}\n{}", wantLine: 2},
		{name: "single quotes", input: "{\n\n  'a': 1\n}", wantLine: 3},
		{name: "bare word", input: "{\"a\": nope}", wantLine: 1},
		{name: "only a comment", input: "// only a comment", wantLine: 1},
		{name: "only comments", input: "// just a comment\n// another", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDocument)

			var merr *MalformedError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, tt.wantLine, merr.Line)
			assert.NotEmpty(t, merr.Reason)
		})
	}
}

func TestDecode_TopLevelMustBeObject(t *testing.T) {
	for _, input := range []string{`[1, 2]`, `"text"`, `42`, `null`} {
		_, err := Decode([]byte(input))
		assert.ErrorIs(t, err, ErrMalformedDocument, "input %s", input)
	}

	v, err := DecodeValue([]byte(`[1, 2,]`))
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, v)
}

// TestDecode_BlockCommentHint verifies that a file using block comments is
// still rejected, but with a hint explaining why.
func TestDecode_BlockCommentHint(t *testing.T) {
	_, err := Decode([]byte("{\n  /* block */\n  \"a\": 1\n}"))
	require.Error(t, err)

	var merr *MalformedError
	require.True(t, errors.As(err, &merr))
	assert.Contains(t, merr.Hint, "block comments")
	assert.Contains(t, err.Error(), "line 2")

	_, err = Decode([]byte(`{"a": }`))
	require.True(t, errors.As(err, &merr))
	assert.Empty(t, merr.Hint, "text jsonc cannot fix either should carry no hint")
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	line, col := position(data, 0)
	assert.Equal(t, [2]int{1, 1}, [2]int{line, col})
	line, col = position(data, 4)
	assert.Equal(t, [2]int{2, 2}, [2]int{line, col})
	line, col = position(data, 100)
	assert.Equal(t, [2]int{3, 3}, [2]int{line, col})
}
