package models

import "strings"

// SubtitleFormat identifies a caption serialization format, either as
// detected on a fetched document or as requested for output.
type SubtitleFormat int

const (
	FormatUnknown SubtitleFormat = iota
	FormatSRT
	FormatVTT
	FormatTXT
	FormatJSON
	// FormatRaw is a passthrough output format that defaults to SRT, and is
	// also used to tag sets parsed from the upstream timed-text XML dialects.
	FormatRaw
)

// String returns the string representation of the format.
func (f SubtitleFormat) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatVTT:
		return "vtt"
	case FormatTXT:
		return "txt"
	case FormatJSON:
		return "json"
	case FormatRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for the format, including the dot.
func (f SubtitleFormat) Extension() string {
	switch f {
	case FormatVTT:
		return ".vtt"
	case FormatTXT:
		return ".txt"
	case FormatJSON:
		return ".json"
	default:
		return ".srt"
	}
}

// ParseFormat converts a format string to a SubtitleFormat.
func ParseFormat(s string) SubtitleFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return FormatSRT
	case "vtt", "webvtt":
		return FormatVTT
	case "txt", "text":
		return FormatTXT
	case "json":
		return FormatJSON
	case "raw":
		return FormatRaw
	default:
		return FormatUnknown
	}
}

// MarshalJSON implements json.Marshaler.
func (f SubtitleFormat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *SubtitleFormat) UnmarshalJSON(data []byte) error {
	*f = ParseFormat(strings.Trim(string(data), `"`))
	return nil
}
