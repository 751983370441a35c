// Package videoid resolves canonical 11-character video identifiers from the
// URL shapes the platform uses: watch-query, short-link, embed-path, and
// shorts-path, on the desktop, mobile, and no-cookie hosts.
package videoid

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ytcaps/ytcaps/internal/apperrors"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var knownHosts = map[string]struct{}{
	"youtube.com":              {},
	"www.youtube.com":          {},
	"m.youtube.com":            {},
	"youtu.be":                 {},
	"youtube-nocookie.com":     {},
	"www.youtube-nocookie.com": {},
}

// IsValid reports whether s matches the video identifier grammar.
func IsValid(s string) bool {
	return idPattern.MatchString(s)
}

// Parse extracts the canonical video identifier from input, which may be a
// bare identifier or any supported URL shape. Extra query parameters are
// tolerated everywhere.
func Parse(input string) (string, error) {
	input = strings.TrimSpace(input)
	if IsValid(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		// Tolerate scheme-less inputs like "youtu.be/ID".
		u, err = url.Parse("https://" + input)
		if err != nil || u.Host == "" {
			return "", &apperrors.ErrInvalidURL{URL: input}
		}
	}

	if _, ok := knownHosts[u.Hostname()]; !ok {
		return "", &apperrors.ErrUnsupportedSource{URL: input}
	}

	if u.Hostname() == "youtu.be" {
		return validated(firstSegment(u.Path))
	}

	if u.Path == "/watch" {
		id := u.Query().Get("v")
		if id == "" {
			return "", &apperrors.ErrInvalidURL{URL: input}
		}
		return validated(id)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts") {
		return validated(segments[1])
	}

	return "", &apperrors.ErrInvalidURL{URL: input}
}

// Normalize resolves input and returns the canonical watch URL for it.
func Normalize(input string) (string, error) {
	id, err := Parse(input)
	if err != nil {
		return "", err
	}
	return WatchURL(id), nil
}

// WatchURL builds the canonical watch URL for a video identifier.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func firstSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

func validated(id string) (string, error) {
	if !IsValid(id) {
		return "", &apperrors.ErrInvalidVideoID{VideoID: id}
	}
	return id, nil
}
