// Package store persists transcript records and channel exports on disk
// and scans them for duplicates.
package store

import (
	"fmt"
	"regexp"
	"strings"
)

// FallbackName is used when sanitization leaves nothing of a file name.
const FallbackName = "untitled"

var (
	// regexSpecials matches regex metacharacters stripped from free text.
	regexSpecials = regexp.MustCompile(`[\\^$.|?*+(){}\[\]]`)
	// astralChars matches characters outside the Basic Multilingual Plane
	// (emoji and the like). Text stays UTF-8 otherwise.
	astralChars = regexp.MustCompile(`[^\x{0000}-\x{FFFF}]`)
	// multiSpace collapses runs of whitespace.
	multiSpace = regexp.MustCompile(`\s+`)
)

// Sanitizer produces filesystem-safe names from free-form titles.
type Sanitizer struct {
	strip  *regexp.Regexp
	maxLen int
}

// NewSanitizer compiles the character-class pattern whose matches are
// stripped from names. maxLen caps the result length in runes.
func NewSanitizer(pattern string, maxLen int) (*Sanitizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile filename pattern: %w", err)
	}
	if maxLen <= 0 {
		return nil, fmt.Errorf("filename max length must be positive")
	}
	return &Sanitizer{strip: re, maxLen: maxLen}, nil
}

// Filename sanitizes a name for filesystem use: unsafe characters are
// stripped, whitespace is collapsed, and the result is trimmed and capped.
// An empty result falls back to FallbackName. Sanitizing an already
// sanitized name yields the same name.
func (s *Sanitizer) Filename(name string) string {
	out := s.strip.ReplaceAllString(name, "")
	out = multiSpace.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	if runes := []rune(out); len(runes) > s.maxLen {
		out = strings.TrimSpace(string(runes[:s.maxLen]))
	}

	if out == "" {
		return FallbackName
	}
	return out
}

// SanitizeText normalizes transcript text for plain-text display: regex
// metacharacters and astral characters (emoji) are stripped and whitespace
// is collapsed. Non-ASCII text within the BMP is preserved.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	text = regexSpecials.ReplaceAllString(text, "")
	text = astralChars.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
