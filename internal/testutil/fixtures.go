// Package testutil provides fixture builders shared by client and service
// tests: player payloads, watch pages, and caption documents.
package testutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CaptionTrackOptions describes one caption track in a generated player
// payload.
type CaptionTrackOptions struct {
	LanguageCode string
	Name         string
	BaseURL      string
	// AutoGenerated marks the track with the upstream asr kind.
	AutoGenerated bool
	Translatable  bool
}

// PlayerResponseOptions describes a generated player payload.
type PlayerResponseOptions struct {
	Tracks        []CaptionTrackOptions
	Title         string
	LengthSeconds int
	// Status overrides the playability status; empty means OK.
	Status string
	Reason string
}

// PlayerResponseJSON generates a player payload document.
func PlayerResponseJSON(opts PlayerResponseOptions) string {
	status := opts.Status
	if status == "" {
		status = "OK"
	}
	payload := map[string]any{
		"playabilityStatus": map[string]any{
			"status": status,
			"reason": opts.Reason,
		},
	}
	if opts.Title != "" || opts.LengthSeconds > 0 {
		payload["videoDetails"] = map[string]any{
			"title":         opts.Title,
			"lengthSeconds": fmt.Sprintf("%d", opts.LengthSeconds),
		}
	}
	if len(opts.Tracks) > 0 {
		tracks := make([]map[string]any, 0, len(opts.Tracks))
		for _, track := range opts.Tracks {
			entry := map[string]any{
				"baseUrl":        track.BaseURL,
				"languageCode":   track.LanguageCode,
				"name":           map[string]any{"simpleText": track.Name},
				"isTranslatable": track.Translatable,
			}
			if track.AutoGenerated {
				entry["kind"] = "asr"
				entry["vssId"] = "a." + track.LanguageCode
			} else {
				entry["vssId"] = "." + track.LanguageCode
			}
			tracks = append(tracks, entry)
		}
		payload["captions"] = map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{
				"captionTracks": tracks,
			},
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WatchPageHTML wraps a player payload in a minimal watch page, embedding it
// the way production pages do.
func WatchPageHTML(title, playerJSON string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s - YouTube</title></head>
<body>
<script>var someOtherState = {"a":1};</script>
<script>var ytInitialPlayerResponse = %s;var meta = {};</script>
<div id="player"></div>
</body>
</html>`, title, playerJSON)
}

// SRTDocument generates an SRT document from (start, end, text) cue triples
// rendered as pre-formatted timestamp strings.
func SRTDocument(cues [][3]string) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, cue[0], cue[1], cue[2])
	}
	return b.String()
}

// Srv3Document generates a timed-text document in the paragraph dialect.
// Each cue is (startMillis, durationMillis, text).
func Srv3Document(cues [][3]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?><timedtext format="3"><body>`)
	for _, cue := range cues {
		fmt.Fprintf(&b, `<p t="%s" d="%s">%s</p>`, cue[0], cue[1], cue[2])
	}
	b.WriteString(`</body></timedtext>`)
	return b.String()
}

// TranscriptDocument generates a timed-text document in the legacy dialect.
// Each cue is (startSeconds, durationSeconds, text).
func TranscriptDocument(cues [][3]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?><transcript>`)
	for _, cue := range cues {
		fmt.Fprintf(&b, `<text start="%s" dur="%s">%s</text>`, cue[0], cue[1], cue[2])
	}
	b.WriteString(`</transcript>`)
	return b.String()
}
