package parser

import (
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/models"
)

// parseVTT handles structured-header documents: a header/metadata region is
// skipped, then every line carrying a dot-decimal timestamp pair opens a cue
// whose text is the following non-blank lines. Lines between cues that carry
// no timestamp (cue identifiers) are skipped.
func parseVTT(text, language string) (*models.SubtitleSet, error) {
	lines := strings.Split(normalizeNewlines(text), "\n")
	i := 0

	// Skip the WEBVTT header and leading metadata.
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE") {
			i++
			continue
		}
		break
	}

	var entries []models.SubtitleEntry
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		groups := vttTimeRe.FindStringSubmatch(line)
		if groups == nil {
			if strings.Contains(line, "-->") {
				return nil, malformed("invalid cue timestamp", line)
			}
			// Cue identifier line.
			i++
			continue
		}

		startMs, endMs := clockDuration(groups)
		i++
		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			textLines = append(textLines, lines[i])
			i++
		}

		entries = append(entries, models.SubtitleEntry{
			Start: time.Duration(startMs) * time.Millisecond,
			End:   time.Duration(endMs) * time.Millisecond,
			Text:  strings.Join(textLines, "\n"),
		})
	}

	if len(entries) == 0 {
		return nil, malformed("no valid VTT entries found", "")
	}

	return &models.SubtitleSet{Entries: entries, Language: language, SourceFormat: models.FormatVTT}, nil
}
