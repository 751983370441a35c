package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/models"
)

// The timed-text dialects are extracted with markup regexes rather than an
// XML decoder. Real documents carry HTML-named entities like &nbsp; that a
// strict decoder rejects, and cue text must pass through exactly one
// fixed-set entity decode, which a decoder would pre-empt for the XML five.
var (
	srv3ParagraphRe = regexp.MustCompile(`(?s)<p\b([^>]*)>(.*?)</p>`)
	srv3SegmentRe   = regexp.MustCompile(`(?s)<s\b[^>]*>(.*?)</s>`)
	legacyTextRe    = regexp.MustCompile(`(?s)<text\b([^>]*)>(.*?)</text>`)

	srv3StartRe   = regexp.MustCompile(`\bt="([^"]*)"`)
	srv3DurRe     = regexp.MustCompile(`\bd="([^"]*)"`)
	legacyStartRe = regexp.MustCompile(`\bstart="([^"]*)"`)
	legacyDurRe   = regexp.MustCompile(`\bdur="([^"]*)"`)
)

// parseTimedText handles the two timed-text XML dialects. The paragraph
// schema is tried first; the legacy schema is attempted only when the
// paragraph schema yields zero entries. The dialects are never merged.
func parseTimedText(text, language string) (*models.SubtitleSet, error) {
	entries, err := parseSrv3(text)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		entries, err = parseLegacyTranscript(text)
		if err != nil {
			return nil, err
		}
	}

	if len(entries) == 0 {
		return nil, malformed("no timed-text entries found", "")
	}

	return &models.SubtitleSet{Entries: entries, Language: language, SourceFormat: models.FormatRaw}, nil
}

// parseSrv3 extracts paragraph-element cues: millisecond start/duration
// attributes, text either inline or split across word-level <s> segments.
// Self-closing empty paragraphs never match and are skipped.
func parseSrv3(text string) ([]models.SubtitleEntry, error) {
	var entries []models.SubtitleEntry
	for _, m := range srv3ParagraphRe.FindAllStringSubmatch(text, -1) {
		attrs, inner := m[1], m[2]

		startMatch := srv3StartRe.FindStringSubmatch(attrs)
		if startMatch == nil {
			return nil, malformed("paragraph without start time", strings.TrimSpace(m[0]))
		}
		startMs, err := strconv.ParseInt(startMatch[1], 10, 64)
		if err != nil {
			return nil, malformed("invalid paragraph start time", startMatch[1])
		}
		durMs := int64(1000)
		if durMatch := srv3DurRe.FindStringSubmatch(attrs); durMatch != nil {
			durMs, err = strconv.ParseInt(durMatch[1], 10, 64)
			if err != nil {
				return nil, malformed("invalid paragraph duration", durMatch[1])
			}
		}

		cueText := inner
		if segments := srv3SegmentRe.FindAllStringSubmatch(inner, -1); len(segments) > 0 {
			var words []string
			for _, segment := range segments {
				words = append(words, segment[1])
			}
			cueText = strings.Join(words, "")
		}
		cueText = strings.TrimSpace(DecodeEntities(cueText))
		if cueText == "" {
			continue
		}

		entries = append(entries, models.SubtitleEntry{
			Start: time.Duration(startMs) * time.Millisecond,
			End:   time.Duration(startMs+durMs) * time.Millisecond,
			Text:  cueText,
		})
	}
	return entries, nil
}

// parseLegacyTranscript extracts text-element cues: fractional-second
// start/duration attributes.
func parseLegacyTranscript(text string) ([]models.SubtitleEntry, error) {
	var entries []models.SubtitleEntry
	for _, m := range legacyTextRe.FindAllStringSubmatch(text, -1) {
		attrs, inner := m[1], m[2]

		startMatch := legacyStartRe.FindStringSubmatch(attrs)
		if startMatch == nil {
			return nil, malformed("transcript text without start time", strings.TrimSpace(m[0]))
		}
		startSec, err := strconv.ParseFloat(startMatch[1], 64)
		if err != nil {
			return nil, malformed("invalid transcript start time", startMatch[1])
		}
		durSec := 1.0
		if durMatch := legacyDurRe.FindStringSubmatch(attrs); durMatch != nil {
			durSec, err = strconv.ParseFloat(durMatch[1], 64)
			if err != nil {
				return nil, malformed("invalid transcript duration", durMatch[1])
			}
		}

		entries = append(entries, models.SubtitleEntry{
			Start: time.Duration(startSec * float64(time.Second)),
			End:   time.Duration((startSec + durSec) * float64(time.Second)),
			Text:  strings.TrimSpace(DecodeEntities(inner)),
		})
	}
	return entries, nil
}
