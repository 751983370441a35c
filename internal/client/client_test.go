package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/models"
	"github.com/ytcaps/ytcaps/internal/services"
	"github.com/ytcaps/ytcaps/internal/testutil"
)

func newTestClient(serverURL string) *client {
	return &client{
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: newDecompressionTransport(nil),
		},
		baseURL:   serverURL,
		mobileURL: serverURL,
		encoder:   services.NewSubtitleEncoder(),
	}
}

// pathRecorder remembers the order of requested paths.
type pathRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *pathRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
}

func (r *pathRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestListTracks_ViaPlayerAPI(t *testing.T) {
	t.Parallel()
	payload := testutil.PlayerResponseJSON(testutil.PlayerResponseOptions{
		Title:         "A video",
		LengthSeconds: 123,
		Tracks: []testutil.CaptionTrackOptions{
			{LanguageCode: "en", Name: "English", BaseURL: "http://example.invalid/en"},
			{LanguageCode: "en", Name: "English (auto)", AutoGenerated: true},
		},
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, "/youtubei/v1/player") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Youtube-Client-Name") == "" {
			t.Error("missing client identity header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	tracks, err := newTestClient(server.URL).ListTracks(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Kind != models.TrackManual || tracks[0].Name != "English" {
		t.Errorf("track 0 = %+v", tracks[0])
	}
	if tracks[1].Kind != models.TrackAutoGenerated {
		t.Errorf("track 1 kind = %v, want auto-generated", tracks[1].Kind)
	}
}

func TestDiscover_FallsBackToWatchPage(t *testing.T) {
	t.Parallel()
	payload := testutil.PlayerResponseJSON(testutil.PlayerResponseOptions{
		Title:  "Fallback video",
		Tracks: []testutil.CaptionTrackOptions{{LanguageCode: "de", Name: "Deutsch"}},
	})
	recorder := &pathRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.record(r)
		switch {
		case strings.HasPrefix(r.URL.Path, "/youtubei/"):
			w.WriteHeader(http.StatusServiceUnavailable)
		case r.URL.Path == "/watch":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(testutil.WatchPageHTML("Fallback video", payload)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	meta, err := newTestClient(server.URL).Metadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.Title != "Fallback video" {
		t.Errorf("Title = %q", meta.Title)
	}
	if len(meta.Tracks) != 1 || meta.Tracks[0].LanguageCode != "de" {
		t.Errorf("Tracks = %+v", meta.Tracks)
	}

	paths := recorder.recorded()
	sawPlayer := false
	for _, p := range paths {
		if strings.HasPrefix(p, "/youtubei/") {
			sawPlayer = true
		}
		if p == "/watch" && !sawPlayer {
			t.Error("watch page was requested before the player endpoint")
		}
	}
	if !sawPlayer {
		t.Error("player endpoint was never attempted")
	}
}

func TestDiscover_AllStrategiesExhausted(t *testing.T) {
	t.Parallel()
	recorder := &pathRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.record(r)
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListTracks(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, &apperrors.ErrNoCaptions{}) {
		t.Fatalf("error = %v, want ErrNoCaptions", err)
	}

	// Exhaustion must visit every strategy, never short-circuit.
	seen := map[string]bool{}
	for _, p := range recorder.recorded() {
		seen[p] = true
	}
	for _, path := range []string{"/youtubei/v1/player", "/watch", "/get_video_info"} {
		if !seen[path] {
			t.Errorf("strategy endpoint %s was never attempted", path)
		}
	}
}

func TestDownloadAll_EndToEnd(t *testing.T) {
	t.Parallel()
	document := testutil.Srv3Document([][3]string{
		{"1000", "2000", "Hello"},
		{"4000", "2000", "World"},
	})
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/youtubei/"):
			payload := testutil.PlayerResponseJSON(testutil.PlayerResponseOptions{
				Title: "E2E",
				Tracks: []testutil.CaptionTrackOptions{
					{LanguageCode: "en", Name: "English", BaseURL: server.URL + "/caps"},
				},
			})
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(payload))
		case r.URL.Path == "/caps":
			w.Header().Set("Content-Type", "text/xml")
			w.Write([]byte(document))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	prefs := models.DefaultPreferences()
	results, err := newTestClient(server.URL).DownloadAll(
		context.Background(), "dQw4w9WgXcQ",
		[]models.SubtitleFormat{models.FormatSRT, models.FormatTXT}, prefs)
	if err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Format != models.FormatSRT || !strings.Contains(results[0].Content, "00:00:01,000 --> 00:00:03,000") {
		t.Errorf("SRT result = %+v", results[0])
	}
	if results[1].Content != "Hello\nWorld" {
		t.Errorf("TXT result content = %q", results[1].Content)
	}
	if results[0].Language != "en" {
		t.Errorf("Language = %q", results[0].Language)
	}
}

func TestDownloadAll_HonorsPreferenceTimeout(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	prefs := models.DefaultPreferences()
	prefs.MaxRetries = 0
	prefs.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := newTestClient(server.URL).DownloadAll(
		context.Background(), "dQw4w9WgXcQ",
		[]models.SubtitleFormat{models.FormatSRT}, prefs)
	if err == nil {
		t.Fatal("expected failure against a stalled upstream")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("download took %v, preference timeout was not applied", elapsed)
	}
}

func TestDownload_NoMatchingManualTrack(t *testing.T) {
	t.Parallel()
	payload := testutil.PlayerResponseJSON(testutil.PlayerResponseOptions{
		Tracks: []testutil.CaptionTrackOptions{
			{LanguageCode: "en", Name: "English (auto)", AutoGenerated: true},
		},
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/youtubei/") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(payload))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	prefs := models.DefaultPreferences()
	prefs.AllowAutoGenerated = false
	_, err := newTestClient(server.URL).Download(context.Background(), "dQw4w9WgXcQ", models.FormatSRT, prefs)
	if !errors.Is(err, &apperrors.ErrOnlyAutoGenerated{}) {
		t.Fatalf("error = %v, want ErrOnlyAutoGenerated", err)
	}
}
