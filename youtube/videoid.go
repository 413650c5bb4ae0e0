// Package youtube provides video identification, metadata resolution,
// channel enumeration and transcript fetching against YouTube endpoints.
package youtube

import (
	"fmt"
	"regexp"
)

// defaultVideoIDPattern locates an 11-character video ID embedded in a URL,
// tolerating trailing query parameters.
var defaultVideoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?].*)?`)

// IDExtractor extracts video IDs from free-form URL strings using a
// configurable pattern.
type IDExtractor struct {
	pattern *regexp.Regexp
}

// NewIDExtractor compiles the given pattern. The pattern must contain
// exactly one capture group holding the video ID.
func NewIDExtractor(pattern string) (*IDExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile video ID pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("video ID pattern needs exactly one capture group, has %d", re.NumSubexp())
	}
	return &IDExtractor{pattern: re}, nil
}

// DefaultIDExtractor returns an extractor using the standard watch-URL pattern.
func DefaultIDExtractor() *IDExtractor {
	return &IDExtractor{pattern: defaultVideoIDPattern}
}

// Extract returns the video ID embedded in s, or ErrInvalidVideoID when the
// pattern does not match.
func (e *IDExtractor) Extract(s string) (string, error) {
	m := e.pattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, s)
	}
	return m[1], nil
}

// ExtractVideoID extracts a video ID using the default pattern.
func ExtractVideoID(s string) (string, error) {
	return DefaultIDExtractor().Extract(s)
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
