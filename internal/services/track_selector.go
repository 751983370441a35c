package services

import (
	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/models"
)

// SelectTrack picks the caption track to download from the discovered list,
// honoring the caller's preferences. The function is pure and deterministic:
// the same inputs always yield the same track.
//
// Filtering narrows the candidate list in stages, each stage applying only
// when it leaves at least one candidate. Within the final candidates the
// priority is: manual track in the requested language, any track in the
// requested language, any manual track, first candidate.
func SelectTrack(tracks []models.SubtitleTrack, prefs models.DownloadPreferences, videoID string) (*models.SubtitleTrack, error) {
	if len(tracks) == 0 {
		return nil, &apperrors.ErrNoCaptions{VideoID: videoID}
	}

	candidates := tracks
	if !prefs.AllowAutoGenerated {
		manual := filterTracks(candidates, func(t models.SubtitleTrack) bool {
			return t.Kind == models.TrackManual
		})
		if len(manual) == 0 {
			return nil, &apperrors.ErrOnlyAutoGenerated{VideoID: videoID}
		}
		candidates = manual
	}

	if prefs.Language != "" {
		inLanguage := filterTracks(candidates, func(t models.SubtitleTrack) bool {
			return t.LanguageCode == prefs.Language
		})
		if len(inLanguage) > 0 {
			candidates = inLanguage
		}
	}

	if prefs.PreferManual {
		manual := filterTracks(candidates, func(t models.SubtitleTrack) bool {
			return t.Kind == models.TrackManual
		})
		if len(manual) > 0 {
			candidates = manual
		}
	}

	for _, pick := range []func(models.SubtitleTrack) bool{
		func(t models.SubtitleTrack) bool {
			return prefs.Language != "" && t.Kind == models.TrackManual && t.LanguageCode == prefs.Language
		},
		func(t models.SubtitleTrack) bool {
			return prefs.Language != "" && t.LanguageCode == prefs.Language
		},
		func(t models.SubtitleTrack) bool { return t.Kind == models.TrackManual },
	} {
		for i := range candidates {
			if pick(candidates[i]) {
				return &candidates[i], nil
			}
		}
	}
	return &candidates[0], nil
}

func filterTracks(tracks []models.SubtitleTrack, keep func(models.SubtitleTrack) bool) []models.SubtitleTrack {
	var out []models.SubtitleTrack
	for _, t := range tracks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
