package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/models"
)

// fetchCaptionContent downloads the raw caption document for a selected
// track, falling back through three request shapes: the track URL with API
// client headers, the track URL asking for the srv3 dialect, and finally a
// synthesized generic timed-text endpoint. An empty 200 body counts as a
// failure; the upstream serves empty bodies instead of errors for some
// unavailable tracks.
func (c *client) fetchCaptionContent(ctx context.Context, videoID string, track *models.SubtitleTrack) ([]byte, error) {
	logger := config.GetLogger()

	type fetchStep struct {
		name string
		url  string
		api  bool
	}
	var steps []fetchStep
	if track.BaseURL != "" {
		steps = append(steps,
			fetchStep{name: "authenticated", url: track.BaseURL, api: true},
			fetchStep{name: "direct_srv3", url: withSrv3(track.BaseURL)},
		)
	}
	steps = append(steps, fetchStep{
		name: "generic_timedtext",
		url: c.baseURL + "/api/timedtext?" + url.Values{
			"v":    {videoID},
			"lang": {track.LanguageCode},
			"fmt":  {"srv3"},
		}.Encode(),
	})

	var lastErr error
	for _, step := range steps {
		body, err := c.fetchOnce(ctx, step.url, step.api)
		if err != nil {
			lastErr = err
			logger.Debug().
				Err(err).
				Str("video_id", videoID).
				Str("step", step.name).
				Msg("caption fetch step failed")
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

func (c *client) fetchOnce(ctx context.Context, fetchURL string, apiHeaders bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "caption fetch", Err: err}
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	if apiHeaders {
		profile := clientProfiles[0]
		req.Header.Set("X-Youtube-Client-Name", profile.ID)
		req.Header.Set("X-Youtube-Client-Version", profile.Version)
		req.Header.Set("Origin", c.baseURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "caption fetch", Err: err}
	}
	defer resp.Body.Close()

	if err := mapStatusError(resp, ""); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "caption fetch read", Err: err}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &apperrors.ErrMalformedCaptions{Detail: "empty caption document"}
	}
	return body, nil
}

// withSrv3 appends fmt=srv3 to a caption URL unless a fmt parameter is
// already present.
func withSrv3(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Get("fmt") != "" {
		return rawURL
	}
	query.Set("fmt", "srv3")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
