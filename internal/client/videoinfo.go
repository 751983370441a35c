package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/models"
)

// discoverFromVideoInfo queries the legacy info endpoint, whose form-encoded
// body nests the player payload in a player_response field.
func (c *client) discoverFromVideoInfo(ctx context.Context, videoID string) (*discoveryOutcome, error) {
	query := url.Values{
		"video_id": {videoID},
		"el":       {"detailpage"},
		"ps":       {"default"},
		"eurl":     {""},
		"gl":       {"US"},
		"hl":       {"en"},
	}
	endpoint := c.baseURL + "/get_video_info?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "video info request", Err: err}
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "video info request", Err: err}
	}
	defer resp.Body.Close()

	if err := mapStatusError(resp, videoID); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "video info read", Err: err}
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, &apperrors.ErrMalformedCaptions{
			VideoID:  videoID,
			Detail:   "undecodable video info body",
			Fragment: excerpt(string(body)),
		}
	}
	encoded := values.Get("player_response")
	if encoded == "" {
		return nil, &apperrors.ErrMalformedCaptions{VideoID: videoID, Detail: "video info body has no player response"}
	}

	var player models.PlayerResponse
	if err := json.Unmarshal([]byte(encoded), &player); err != nil {
		return nil, &apperrors.ErrMalformedCaptions{
			VideoID:  videoID,
			Detail:   "undecodable player response",
			Fragment: excerpt(encoded),
		}
	}
	if err := checkPlayability(videoID, &player); err != nil {
		return nil, err
	}
	return outcomeFromPlayer(&player), nil
}
