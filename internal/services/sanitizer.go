package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/models"
	"github.com/ytcaps/ytcaps/internal/parser"
)

var markupTagRe = regexp.MustCompile(`<[^>]*>`)

const (
	shortEntryThreshold = 100 * time.Millisecond
	longEntryThreshold  = 30 * time.Second
)

// CleanEntries returns a copy of entries with markup tags removed, runs of
// whitespace collapsed to single spaces, and residual character entities
// decoded. Entry order and timing are untouched; an entry whose text becomes
// empty is kept.
func CleanEntries(entries []models.SubtitleEntry) []models.SubtitleEntry {
	out := make([]models.SubtitleEntry, len(entries))
	for i, e := range entries {
		text := markupTagRe.ReplaceAllString(e.Text, "")
		text = strings.Join(strings.Fields(text), " ")
		e.Text = parser.DecodeEntities(text)
		out[i] = e
	}
	return out
}

// ValidateTiming checks every entry for the start < end invariant and
// returns ErrInvalidTiming for the first violation. Suspicious but legal
// timings are only logged: entries shorter than 100ms, longer than 30s, and
// entries overlapping their predecessor.
func ValidateTiming(entries []models.SubtitleEntry) error {
	logger := config.GetLogger()
	for i, e := range entries {
		if e.Start >= e.End {
			return &apperrors.ErrInvalidTiming{Entry: i + 1, Start: e.Start, End: e.End}
		}
		if d := e.Duration(); d < shortEntryThreshold {
			logger.Warn().Int("entry", i+1).Dur("duration", d).Msg("suspiciously short caption entry")
		} else if d > longEntryThreshold {
			logger.Warn().Int("entry", i+1).Dur("duration", d).Msg("suspiciously long caption entry")
		}
		if i > 0 && e.Start < entries[i-1].End {
			logger.Warn().Int("entry", i+1).Msg("caption entry overlaps its predecessor")
		}
	}
	return nil
}
