package models

// TrackKind distinguishes human-authored caption tracks from
// speech-recognition output.
type TrackKind int

const (
	TrackManual TrackKind = iota
	TrackAutoGenerated
)

// String returns the string representation of the track kind.
func (k TrackKind) String() string {
	if k == TrackAutoGenerated {
		return "auto-generated"
	}
	return "manual"
}

// SubtitleTrack is a discoverable caption stream for a video. Tracks are
// produced fresh by every discovery call and never cached.
type SubtitleTrack struct {
	LanguageCode string    `json:"languageCode"`
	Name         string    `json:"name"`
	Kind         TrackKind `json:"kind"`
	// BaseURL is the source locator reported by the upstream, empty when the
	// discovery strategy could not provide one. The content fetcher
	// synthesizes a generic endpoint in that case.
	BaseURL      string `json:"baseUrl,omitempty"`
	Translatable bool   `json:"translatable"`
}
