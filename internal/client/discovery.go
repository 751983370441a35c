package client

import (
	"context"
	"strconv"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/metrics"
	"github.com/ytcaps/ytcaps/internal/models"
)

// discoveryOutcome is one strategy's yield: the track list plus whatever
// video metadata the strategy's payload happened to carry.
type discoveryOutcome struct {
	Tracks   []models.SubtitleTrack
	Title    string
	Duration time.Duration
}

type discoveryStrategy struct {
	name string
	run  func(ctx context.Context, videoID string) (*discoveryOutcome, error)
}

// discover tries each strategy strictly in order and returns the first
// outcome with at least one track. Strategy failures are logged and counted,
// never fatal on their own; only full exhaustion is an error.
func (c *client) discover(ctx context.Context, videoID string) (*discoveryOutcome, error) {
	logger := config.GetLogger()

	strategies := []discoveryStrategy{
		{name: "innertube", run: c.discoverFromPlayerAPI},
		{name: "watch_page", run: func(ctx context.Context, id string) (*discoveryOutcome, error) {
			return c.discoverFromPage(ctx, c.baseURL, id)
		}},
		{name: "mobile_page", run: func(ctx context.Context, id string) (*discoveryOutcome, error) {
			return c.discoverFromPage(ctx, c.mobileURL, id)
		}},
		{name: "video_info", run: c.discoverFromVideoInfo},
	}

	for _, strategy := range strategies {
		outcome, err := strategy.run(ctx, videoID)
		if err != nil {
			metrics.DiscoveryAttemptsTotal.WithLabelValues(strategy.name, "error").Inc()
			logger.Debug().
				Err(err).
				Str("video_id", videoID).
				Str("strategy", strategy.name).
				Msg("discovery strategy failed")
			continue
		}
		if len(outcome.Tracks) == 0 {
			metrics.DiscoveryAttemptsTotal.WithLabelValues(strategy.name, "empty").Inc()
			continue
		}
		metrics.DiscoveryAttemptsTotal.WithLabelValues(strategy.name, "success").Inc()
		logger.Debug().
			Str("video_id", videoID).
			Str("strategy", strategy.name).
			Int("tracks", len(outcome.Tracks)).
			Msg("discovered caption tracks")
		return outcome, nil
	}
	return nil, &apperrors.ErrNoCaptions{VideoID: videoID}
}

// discoverFromPlayerAPI walks the client identity table, returning the first
// identity that yields tracks.
func (c *client) discoverFromPlayerAPI(ctx context.Context, videoID string) (*discoveryOutcome, error) {
	logger := config.GetLogger()
	var lastErr error
	for _, profile := range clientProfiles {
		player, err := c.fetchPlayerData(ctx, videoID, profile)
		if err == nil {
			err = checkPlayability(videoID, player)
		}
		if err != nil {
			lastErr = err
			logger.Debug().
				Err(err).
				Str("video_id", videoID).
				Str("client", profile.Name).
				Msg("player request failed for identity")
			continue
		}
		if outcome := outcomeFromPlayer(player); len(outcome.Tracks) > 0 {
			return outcome, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return &discoveryOutcome{}, nil
}

// outcomeFromPlayer converts a player payload into tracks plus metadata.
// The upstream marks speech-recognition tracks with kind "asr".
func outcomeFromPlayer(player *models.PlayerResponse) *discoveryOutcome {
	outcome := &discoveryOutcome{}
	for _, ct := range player.CaptionTracks() {
		kind := models.TrackManual
		if ct.Kind == "asr" {
			kind = models.TrackAutoGenerated
		}
		outcome.Tracks = append(outcome.Tracks, models.SubtitleTrack{
			LanguageCode: ct.LanguageCode,
			Name:         ct.DisplayName(),
			Kind:         kind,
			BaseURL:      ct.BaseURL,
			Translatable: ct.IsTranslatable,
		})
	}
	if details := player.VideoDetails; details != nil {
		outcome.Title = details.Title
		if seconds, err := strconv.Atoi(details.LengthSeconds); err == nil {
			outcome.Duration = time.Duration(seconds) * time.Second
		}
	}
	return outcome
}
