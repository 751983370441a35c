package models

import "time"

// SubtitleEntry is a canonical caption unit independent of source format.
// The start < end invariant is checked by the timing validator, not here.
type SubtitleEntry struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Duration returns the display duration of the entry.
func (e SubtitleEntry) Duration() time.Duration {
	return e.End - e.Start
}

// SubtitleSet is an ordered sequence of canonical entries together with the
// resolved language and the format the source document was detected as.
// Entries keep discovery order; duplicates are not removed.
type SubtitleSet struct {
	Entries      []SubtitleEntry `json:"entries"`
	Language     string          `json:"language"`
	SourceFormat SubtitleFormat  `json:"sourceFormat"`
}
