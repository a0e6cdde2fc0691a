// Package videoid resolves user-supplied YouTube URLs and bare identifiers
// into canonical 11-character video IDs.
package videoid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid reports that no well-formed video ID could be extracted
// from the input.
var ErrInvalid = errors.New("videoid: no valid video ID found")

// ID is a validated YouTube video identifier: exactly 11 characters
// drawn from [A-Za-z0-9_-]. Construct only via Parse.
type ID string

var bareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// urlPatterns are tried in order; the first match wins. Each pattern
// captures exactly 11 characters of the ID alphabet, so query-polluted
// or truncated candidates never slip through.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?[^#]*?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

// Parse extracts a video ID from a watch URL, a short URL, an embed URL,
// a shorts URL, or a bare 11-character ID. Parse is pure and idempotent:
// the same input always yields the same ID.
func Parse(input string) (ID, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalid)
	}

	if bareID.MatchString(trimmed) {
		return ID(trimmed), nil
	}

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return ID(m[1]), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalid, input)
}

func (id ID) String() string {
	return string(id)
}

// WatchURL returns the canonical long-form watch URL for the ID.
func (id ID) WatchURL() string {
	return "https://youtube.com/watch?v=" + string(id)
}
