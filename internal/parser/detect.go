// Package parser classifies raw caption documents by content signature and
// parses them into canonical subtitle sets. The closed set of parser
// variants shares one capability: parse text, return entries or a terminal
// error. A parse yielding zero entries is always an error.
package parser

import (
	"regexp"
	"strings"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/models"
)

var (
	srtTimeRe = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2}):(\d{2}):(\d{2}),(\d{3})`)
	vttTimeRe = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})\.(\d{3}) --> (\d{2}):(\d{2}):(\d{2})\.(\d{3})`)
)

// Parse decodes raw caption bytes and dispatches to the parser matching the
// first content signature, in order: WEBVTT header, XML prolog or transcript
// root, SRT timestamp pair, bare timestamp arrow (VTT best effort), plain
// lines.
func Parse(raw []byte, language string) (*models.SubtitleSet, error) {
	text := DecodeBytes(raw)

	switch {
	case strings.Contains(text, "WEBVTT"):
		return parseVTT(text, language)
	case strings.Contains(text, "<?xml") || strings.Contains(text, "<transcript"):
		return parseTimedText(text, language)
	case srtTimeRe.MatchString(text):
		return parseSRT(text, language)
	case strings.Contains(text, "-->"):
		return parseVTT(text, language)
	default:
		return parsePlain(text, language)
	}
}

// clockDuration converts the captured hour/minute/second/millisecond groups
// of a timestamp regex match into a duration.
func clockDuration(groups []string) (start, end int64) {
	ms := func(h, m, s, frac string) int64 {
		return atoi(h)*3600000 + atoi(m)*60000 + atoi(s)*1000 + atoi(frac)
	}
	return ms(groups[1], groups[2], groups[3], groups[4]), ms(groups[5], groups[6], groups[7], groups[8])
}

func atoi(s string) int64 {
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	return n
}

func malformed(detail, fragment string) error {
	return &apperrors.ErrMalformedCaptions{Detail: detail, Fragment: fragment}
}
