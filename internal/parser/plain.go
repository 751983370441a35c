package parser

import (
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/models"
)

// plainLineDuration is the synthetic display time assigned to each line of
// an untimed document.
const plainLineDuration = 3 * time.Second

// parsePlain assigns sequential, non-overlapping, zero-gap synthetic timing
// to each non-blank line of an untimed document.
func parsePlain(text, language string) (*models.SubtitleSet, error) {
	var entries []models.SubtitleEntry
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		start := time.Duration(len(entries)) * plainLineDuration
		entries = append(entries, models.SubtitleEntry{
			Start: start,
			End:   start + plainLineDuration,
			Text:  line,
		})
	}

	if len(entries) == 0 {
		return nil, malformed("no content found in plain text", "")
	}

	return &models.SubtitleSet{Entries: entries, Language: language, SourceFormat: models.FormatTXT}, nil
}
