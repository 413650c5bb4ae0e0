package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer(t *testing.T) *Sanitizer {
	t.Helper()
	s, err := NewSanitizer(`[^\w\-\s]`, 36)
	require.NoError(t, err)
	return s
}

func TestFilenameStripsUnsafeCharacters(t *testing.T) {
	s := newTestSanitizer(t)

	assert.Equal(t, "My Video Title", s.Filename(`My "Video" Title?!`))
	assert.Equal(t, "a-b_c", s.Filename("a-b_c"))
	assert.Equal(t, "slashes gone", s.Filename("slashes/gone\\"))
}

func TestFilenameCollapsesWhitespace(t *testing.T) {
	s := newTestSanitizer(t)
	assert.Equal(t, "a b c", s.Filename("  a \t b \n  c  "))
}

func TestFilenameTruncates(t *testing.T) {
	s, err := NewSanitizer(`[^\w\-\s]`, 5)
	require.NoError(t, err)

	assert.Equal(t, "abcde", s.Filename("abcdefghij"))
	// Truncation never leaves trailing whitespace.
	assert.Equal(t, "abcd", s.Filename("abcd efghij"))
}

func TestFilenameFallback(t *testing.T) {
	s := newTestSanitizer(t)
	assert.Equal(t, FallbackName, s.Filename("???!!!"))
	assert.Equal(t, FallbackName, s.Filename(""))
	assert.Equal(t, FallbackName, s.Filename("   "))
}

func TestFilenameIdempotent(t *testing.T) {
	s := newTestSanitizer(t)

	inputs := []string{
		`My "Video" Title?!`,
		"  spaced   out  ",
		"plain",
		"a very long title that will certainly be truncated somewhere",
		"???",
	}
	for _, input := range inputs {
		once := s.Filename(input)
		assert.Equal(t, once, s.Filename(once), "input %q", input)
	}
}

func TestNewSanitizerRejectsBadInput(t *testing.T) {
	_, err := NewSanitizer("[", 36)
	assert.Error(t, err)

	_, err = NewSanitizer(`[^\w]`, 0)
	assert.Error(t, err)
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"regex specials", `a^b$c.d|e?f*g+h(i)j{k}l[m]n\o`, "abcdefghijklmno"},
		{"emoji stripped", "so good \U0001F600 right", "so good right"},
		{"bmp non-ascii kept", "naïve café 日本語", "naïve café 日本語"},
		{"whitespace collapsed", "  a \n b\t\tc ", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}
