package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/models"
)

// discoverFromPage scrapes a watch page (www or mobile) and extracts the
// player payload embedded in its scripts.
func (c *client) discoverFromPage(ctx context.Context, domain, videoID string) (*discoveryOutcome, error) {
	doc, err := c.fetchPage(ctx, domain+"/watch?v="+videoID)
	if err != nil {
		return nil, err
	}

	player, err := extractPlayerResponse(doc)
	if err != nil {
		return nil, err
	}
	if err := checkPlayability(videoID, player); err != nil {
		return nil, err
	}

	outcome := outcomeFromPlayer(player)
	if outcome.Title == "" {
		outcome.Title = pageTitle(doc)
	}
	return outcome, nil
}

// fetchPage GETs an HTML page with browser headers and parses it honoring
// the declared charset.
func (c *client) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "page request", Err: err}
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "page request", Err: err}
	}
	defer resp.Body.Close()

	if err := mapStatusError(resp, ""); err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "page charset", Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "page parse", Err: err}
	}
	return doc, nil
}

var playerResponseMarkers = []string{
	"var ytInitialPlayerResponse = ",
	"ytInitialPlayerResponse = ",
}

// extractPlayerResponse walks the page scripts for the embedded player
// payload. Decoding with json.Decoder stops at the end of the object, so
// the trailing script text after the JSON literal does not matter.
func extractPlayerResponse(doc *goquery.Document) (*models.PlayerResponse, error) {
	var player *models.PlayerResponse
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for _, marker := range playerResponseMarkers {
			idx := strings.Index(text, marker)
			if idx < 0 {
				continue
			}
			var candidate models.PlayerResponse
			decoder := json.NewDecoder(strings.NewReader(text[idx+len(marker):]))
			if err := decoder.Decode(&candidate); err != nil {
				continue
			}
			player = &candidate
			return false
		}
		return true
	})
	if player == nil {
		return nil, &apperrors.ErrMalformedCaptions{Detail: "no embedded player response in page"}
	}
	return player, nil
}

func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSuffix(title, " - YouTube")
}
