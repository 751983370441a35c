// Command ytcaps downloads caption tracks for a single video and writes them
// to files, or lists the available tracks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/ytcaps/ytcaps/internal/client"
	"github.com/ytcaps/ytcaps/internal/config"
	"github.com/ytcaps/ytcaps/internal/metrics"
	"github.com/ytcaps/ytcaps/internal/models"
	"github.com/ytcaps/ytcaps/internal/videoid"
)

func main() {
	var (
		formatsFlag  = flag.String("formats", "srt", "comma-separated output formats: srt, vtt, txt, json, raw")
		langFlag     = flag.String("lang", "", "preferred language code (e.g. en, de)")
		outputFlag   = flag.String("o", "", "output path prefix; defaults to the video ID")
		listFlag     = flag.Bool("list", false, "list available caption tracks and exit")
		metaFlag     = flag.Bool("metadata", false, "print video metadata and exit")
		noAutoFlag   = flag.Bool("no-auto", false, "reject auto-generated caption tracks")
		anyKindFlag  = flag.Bool("any-kind", false, "do not prefer manual tracks over auto-generated ones")
		noCleanFlag  = flag.Bool("no-clean", false, "keep markup and entities in caption text")
		validateFlag = flag.Bool("validate", false, "fail on entries with invalid timing")
		retriesFlag  = flag.Int("retries", 3, "maximum retries of recoverable failures")
		timeoutFlag  = flag.Duration("timeout", 30*time.Second, "per-request timeout")
	)
	flag.Parse()

	logger := config.GetLogger()
	cfg := config.GetConfig()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ytcaps [flags] <video URL or ID>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer metricsServer.Shutdown(context.Background())
	}

	videoID, err := videoid.Parse(flag.Arg(0))
	if err != nil {
		fail(logger, err)
	}

	cfg.ClientTimeout = timeoutFlag.String()
	c := client.NewClient(cfg)
	ctx := context.Background()

	switch {
	case *listFlag:
		tracks, err := c.ListTracks(ctx, videoID)
		if err != nil {
			fail(logger, err)
		}
		printTracks(tracks)
	case *metaFlag:
		meta, err := c.Metadata(ctx, videoID)
		if err != nil {
			fail(logger, err)
		}
		fmt.Printf("Video:    %s\nTitle:    %s\nDuration: %s\n\n", meta.VideoID, meta.Title, meta.Duration)
		printTracks(meta.Tracks)
	default:
		prefs := models.DownloadPreferences{
			Language:           *langFlag,
			AllowAutoGenerated: !*noAutoFlag,
			PreferManual:       !*anyKindFlag,
			CleanContent:       !*noCleanFlag,
			ValidateTiming:     *validateFlag,
			MaxRetries:         *retriesFlag,
			Timeout:            *timeoutFlag,
		}
		formats, err := parseFormats(*formatsFlag)
		if err != nil {
			fail(logger, err)
		}
		results, err := c.DownloadAll(ctx, videoID, formats, prefs)
		if err != nil {
			fail(logger, err)
		}
		prefix := *outputFlag
		if prefix == "" {
			prefix = videoID
		}
		for _, result := range results {
			path := prefix + result.Format.Extension()
			if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
				fail(logger, err)
			}
			logger.Info().
				Str("path", path).
				Str("language", result.Language).
				Stringer("format", result.Format).
				Msg("wrote caption file")
		}
	}
}

func parseFormats(s string) ([]models.SubtitleFormat, error) {
	var formats []models.SubtitleFormat
	for _, part := range strings.Split(s, ",") {
		format := models.ParseFormat(part)
		if format == models.FormatUnknown {
			return nil, fmt.Errorf("unknown output format %q", part)
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func printTracks(tracks []models.SubtitleTrack) {
	fmt.Printf("%d caption track(s):\n", len(tracks))
	for _, track := range tracks {
		translatable := ""
		if track.Translatable {
			translatable = ", translatable"
		}
		fmt.Printf("  %-8s %s (%s%s)\n", track.LanguageCode, track.Name, track.Kind, translatable)
	}
}

func fail(logger zerolog.Logger, err error) {
	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
	logger.Fatal().Err(err).Msg("caption download failed")
}
