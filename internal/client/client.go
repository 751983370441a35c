// Package client discovers and downloads caption tracks for a single video.
// Discovery tries a fixed order of strategies against the upstream player
// endpoint and public pages; fetching and parsing happen per selected track.
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/metrics"
	"github.com/ytcaps/ytcaps/internal/models"
	"github.com/ytcaps/ytcaps/internal/parser"
	"github.com/ytcaps/ytcaps/internal/retry"
	"github.com/ytcaps/ytcaps/internal/services"
)

// Client defines the caption operations for a single video.
type Client interface {
	// ListTracks returns the discovered caption tracks without downloading
	// any content. Tracks are discovered fresh on every call.
	ListTracks(ctx context.Context, videoID string) ([]models.SubtitleTrack, error)

	// Metadata returns basic video information together with the track list.
	Metadata(ctx context.Context, videoID string) (*models.VideoMetadata, error)

	// Download discovers, selects, fetches, parses, and encodes one caption
	// track into the requested format. Recoverable failures are retried per
	// the preferences.
	Download(ctx context.Context, videoID string, format models.SubtitleFormat, prefs models.DownloadPreferences) (*models.SubtitleResult, error)

	// DownloadAll is Download for several output formats sharing a single
	// discovery, fetch, and parse.
	DownloadAll(ctx context.Context, videoID string, formats []models.SubtitleFormat, prefs models.DownloadPreferences) ([]models.SubtitleResult, error)
}

type client struct {
	httpClient *http.Client
	baseURL    string
	mobileURL  string
	encoder    services.SubtitleEncoder
}

// NewClient creates a new client instance with proxy configuration if provided.
func NewClient(cfg *config.Config) Client {
	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsed, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsed
		}
	}

	// Clone DefaultTransport to preserve its pooling and HTTP/2 settings.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newDecompressionTransport(baseTransport),
		},
		baseURL:   cfg.YouTubeDomain,
		mobileURL: cfg.MobileDomain,
		encoder:   services.NewSubtitleEncoder(),
	}
}

func (c *client) ListTracks(ctx context.Context, videoID string) ([]models.SubtitleTrack, error) {
	outcome, err := c.discover(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return outcome.Tracks, nil
}

func (c *client) Metadata(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	outcome, err := c.discover(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &models.VideoMetadata{
		VideoID:  videoID,
		Title:    outcome.Title,
		Duration: outcome.Duration,
		Tracks:   outcome.Tracks,
	}, nil
}

func (c *client) Download(ctx context.Context, videoID string, format models.SubtitleFormat, prefs models.DownloadPreferences) (*models.SubtitleResult, error) {
	results, err := c.DownloadAll(ctx, videoID, []models.SubtitleFormat{format}, prefs)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func (c *client) DownloadAll(ctx context.Context, videoID string, formats []models.SubtitleFormat, prefs models.DownloadPreferences) ([]models.SubtitleResult, error) {
	results, err := retry.Do(ctx, prefs.MaxRetries, func(ctx context.Context) ([]models.SubtitleResult, error) {
		// The preference timeout bounds each pipeline attempt; retries get a
		// fresh deadline.
		if prefs.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, prefs.Timeout)
			defer cancel()
		}
		return c.downloadOnce(ctx, videoID, formats, prefs)
	})
	if err != nil {
		metrics.CaptionDownloadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CaptionDownloadsTotal.WithLabelValues("success").Inc()
	return results, nil
}

// downloadOnce runs the whole pipeline exactly once: discover, select,
// fetch, parse, process, encode.
func (c *client) downloadOnce(ctx context.Context, videoID string, formats []models.SubtitleFormat, prefs models.DownloadPreferences) ([]models.SubtitleResult, error) {
	logger := config.GetLogger()

	outcome, err := c.discover(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := services.SelectTrack(outcome.Tracks, prefs, videoID)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("video_id", videoID).
		Str("language", track.LanguageCode).
		Stringer("kind", track.Kind).
		Msg("selected caption track")

	raw, err := c.fetchCaptionContent(ctx, videoID, track)
	if err != nil {
		return nil, err
	}

	set, err := parser.Parse(raw, track.LanguageCode)
	if err != nil {
		if malformed, ok := err.(*apperrors.ErrMalformedCaptions); ok && malformed.VideoID == "" {
			malformed.VideoID = videoID
		}
		return nil, err
	}
	metrics.ParsedDocumentsTotal.WithLabelValues(set.SourceFormat.String()).Inc()

	if prefs.ValidateTiming {
		if err := services.ValidateTiming(set.Entries); err != nil {
			return nil, err
		}
	}
	if prefs.CleanContent {
		set.Entries = services.CleanEntries(set.Entries)
	}

	results := make([]models.SubtitleResult, 0, len(formats))
	for _, format := range formats {
		content, err := c.encoder.Encode(set, format)
		if err != nil {
			return nil, err
		}
		results = append(results, models.SubtitleResult{
			Format:   format,
			Language: set.Language,
			Content:  content,
		})
	}
	return results, nil
}
