package parser

import (
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/models"
)

// parseSRT handles numbered-block documents: blank-line-delimited blocks
// whose second line carries a comma-decimal timestamp pair and whose
// remaining lines are the cue text.
func parseSRT(text, language string) (*models.SubtitleSet, error) {
	var entries []models.SubtitleEntry

	for _, block := range strings.Split(normalizeNewlines(text), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		timingLine := lines[1]
		groups := srtTimeRe.FindStringSubmatch(timingLine)
		if groups == nil {
			return nil, malformed("invalid timestamp in numbered block", timingLine)
		}

		startMs, endMs := clockDuration(groups)
		entries = append(entries, models.SubtitleEntry{
			Start: time.Duration(startMs) * time.Millisecond,
			End:   time.Duration(endMs) * time.Millisecond,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}

	if len(entries) == 0 {
		return nil, malformed("no valid SRT entries found", "")
	}

	return &models.SubtitleSet{Entries: entries, Language: language, SourceFormat: models.FormatSRT}, nil
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
