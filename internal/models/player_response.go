package models

// PlayerResponse mirrors the subset of the upstream player payload the
// pipeline needs: playability, caption track list, and video details. The
// same document shape is returned by the authenticated player endpoint,
// embedded in watch/mobile pages, and nested in the legacy info endpoint.
type PlayerResponse struct {
	PlayabilityStatus *PlayabilityStatus `json:"playabilityStatus,omitempty"`
	Captions          *Captions          `json:"captions,omitempty"`
	VideoDetails      *VideoDetails      `json:"videoDetails,omitempty"`
}

// PlayabilityStatus reports whether the video can be played and why not.
type PlayabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Captions wraps the caption track list renderer.
type Captions struct {
	PlayerCaptionsTracklistRenderer *CaptionsTracklist `json:"playerCaptionsTracklistRenderer,omitempty"`
}

// CaptionsTracklist holds the discoverable caption tracks.
type CaptionsTracklist struct {
	CaptionTracks []CaptionTrack `json:"captionTracks,omitempty"`
}

// CaptionTrack is the upstream representation of one caption stream.
type CaptionTrack struct {
	BaseURL        string     `json:"baseUrl"`
	Name           *TrackName `json:"name,omitempty"`
	LanguageCode   string     `json:"languageCode"`
	VssID          string     `json:"vssId,omitempty"`
	Kind           string     `json:"kind,omitempty"`
	IsTranslatable bool       `json:"isTranslatable,omitempty"`
}

// DisplayName returns the human-readable track name, falling back to the
// language code when the upstream provides none.
func (t CaptionTrack) DisplayName() string {
	if t.Name != nil {
		if t.Name.SimpleText != "" {
			return t.Name.SimpleText
		}
		if len(t.Name.Runs) > 0 && t.Name.Runs[0].Text != "" {
			return t.Name.Runs[0].Text
		}
	}
	return t.LanguageCode
}

// TrackName is rendered either as simple text or as a run list depending on
// the client identity that produced the response.
type TrackName struct {
	SimpleText string    `json:"simpleText,omitempty"`
	Runs       []TextRun `json:"runs,omitempty"`
}

// TextRun is one segment of a run-list rendered string.
type TextRun struct {
	Text string `json:"text"`
}

// VideoDetails carries basic video metadata from the player payload.
type VideoDetails struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	LengthSeconds string `json:"lengthSeconds"`
	Author        string `json:"author"`
}

// CaptionTracks returns the track list, or nil when the payload has none.
func (p *PlayerResponse) CaptionTracks() []CaptionTrack {
	if p == nil || p.Captions == nil || p.Captions.PlayerCaptionsTracklistRenderer == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}
