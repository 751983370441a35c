package models

import "time"

// SubtitleResult is one encoded caption payload, tagged with the format it
// was encoded into and the language of the selected track.
type SubtitleResult struct {
	Format   SubtitleFormat `json:"format"`
	Language string         `json:"language"`
	Content  string         `json:"content"`
}

// VideoMetadata carries basic video information and the discovered caption
// tracks, without any caption content.
type VideoMetadata struct {
	VideoID  string          `json:"videoId"`
	Title    string          `json:"title"`
	Duration time.Duration   `json:"duration,omitempty"`
	Tracks   []SubtitleTrack `json:"tracks"`
}
