package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/models"
)

const defaultRateLimitDelay = 60 * time.Second

// fetchPlayerData requests the player payload for a video under one client
// identity. No retries happen at this layer.
func (c *client) fetchPlayerData(ctx context.Context, videoID string, profile clientProfile) (*models.PlayerResponse, error) {
	body, err := json.Marshal(newPlayerRequest(videoID, profile))
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "player request encode", Err: err}
	}

	endpoint := c.baseURL + "/youtubei/v1/player?key=" + profile.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "player request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Youtube-Client-Name", profile.ID)
	req.Header.Set("X-Youtube-Client-Version", profile.Version)
	req.Header.Set("Origin", c.baseURL)
	if profile.UserAgent != "" {
		req.Header.Set("User-Agent", profile.UserAgent)
	} else {
		req.Header.Set("User-Agent", config.GetUserAgent())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "player request", Err: err}
	}
	defer resp.Body.Close()

	if err := mapStatusError(resp, videoID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "player response read", Err: err}
	}

	var player models.PlayerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, &apperrors.ErrMalformedCaptions{
			VideoID:  videoID,
			Detail:   "undecodable player response",
			Fragment: excerpt(string(data)),
		}
	}
	return &player, nil
}

// mapStatusError converts a non-2xx player-endpoint response into the
// matching typed error.
func mapStatusError(resp *http.Response, videoID string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &apperrors.ErrVideoNotFound{VideoID: videoID}
	case resp.StatusCode == http.StatusForbidden:
		return &apperrors.ErrVideoRestricted{VideoID: videoID, Reason: "access forbidden"}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &apperrors.ErrRateLimited{RetryAfter: retryAfterDelay(resp)}
	case resp.StatusCode >= 500:
		return &apperrors.ErrServiceUnavailable{Status: resp.StatusCode}
	default:
		return &apperrors.ErrTransport{
			Op:  "player request",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}

// retryAfterDelay reads the Retry-After header, falling back to a fixed
// delay when the server sends none.
func retryAfterDelay(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRateLimitDelay
}

// checkPlayability maps an unplayable status to the matching typed error.
// A playable video, or one without a status at all, passes.
func checkPlayability(videoID string, player *models.PlayerResponse) error {
	status := player.PlayabilityStatus
	if status == nil || status.Status == "" || status.Status == "OK" {
		return nil
	}
	reason := strings.ToLower(status.Reason)
	switch {
	case strings.Contains(reason, "age"):
		return &apperrors.ErrAgeRestricted{VideoID: videoID}
	case strings.Contains(reason, "country") || strings.Contains(reason, "region"):
		return &apperrors.ErrGeoBlocked{VideoID: videoID}
	case status.Status == "ERROR":
		return &apperrors.ErrVideoNotFound{VideoID: videoID}
	default:
		return &apperrors.ErrVideoRestricted{VideoID: videoID, Reason: status.Reason}
	}
}

// excerpt bounds a payload fragment carried in error diagnostics.
func excerpt(s string) string {
	const limit = 120
	s = strings.TrimSpace(s)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
