package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/models"
)

// SubtitleEncoder serializes a canonical subtitle set into an output format.
// Encoding is total over non-empty sets: every supported format produces
// output for every set, preserving entry order and timing.
type SubtitleEncoder interface {
	Encode(set *models.SubtitleSet, format models.SubtitleFormat) (string, error)
}

// DefaultSubtitleEncoder is the default implementation of SubtitleEncoder.
type DefaultSubtitleEncoder struct{}

// NewSubtitleEncoder creates a new instance of DefaultSubtitleEncoder.
func NewSubtitleEncoder() SubtitleEncoder {
	return &DefaultSubtitleEncoder{}
}

func (e *DefaultSubtitleEncoder) Encode(set *models.SubtitleSet, format models.SubtitleFormat) (string, error) {
	switch format {
	case models.FormatSRT, models.FormatRaw:
		return encodeSRT(set), nil
	case models.FormatVTT:
		return encodeVTT(set), nil
	case models.FormatTXT:
		return encodeTXT(set), nil
	case models.FormatJSON:
		return encodeJSON(set)
	default:
		return "", &apperrors.ErrEncodingFailure{
			Format: format.String(),
			Err:    fmt.Errorf("unsupported output format"),
		}
	}
}

func encodeSRT(set *models.SubtitleSet) string {
	var b strings.Builder
	for i, entry := range set.Entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, formatClock(entry.Start, ','), formatClock(entry.End, ','), entry.Text)
	}
	return b.String()
}

func encodeVTT(set *models.SubtitleSet) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, entry := range set.Entries {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			formatClock(entry.Start, '.'), formatClock(entry.End, '.'), entry.Text)
	}
	return b.String()
}

func encodeTXT(set *models.SubtitleSet) string {
	lines := make([]string, len(set.Entries))
	for i, entry := range set.Entries {
		lines[i] = entry.Text
	}
	return strings.Join(lines, "\n")
}

type jsonEntry struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type jsonDocument struct {
	Language string      `json:"language"`
	Entries  []jsonEntry `json:"entries"`
}

func encodeJSON(set *models.SubtitleSet) (string, error) {
	doc := jsonDocument{Language: set.Language, Entries: make([]jsonEntry, len(set.Entries))}
	for i, entry := range set.Entries {
		doc.Entries[i] = jsonEntry{
			Start: entry.Start.Seconds(),
			End:   entry.End.Seconds(),
			Text:  entry.Text,
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &apperrors.ErrEncodingFailure{Format: models.FormatJSON.String(), Err: err}
	}
	return string(data), nil
}

// formatClock renders a duration as HH:MM:SS<sep>mmm, the shared shape of
// SRT and VTT timestamps.
func formatClock(d time.Duration, sep byte) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d%c%03d",
		ms/3600000, ms/60000%60, ms/1000%60, sep, ms%1000)
}
