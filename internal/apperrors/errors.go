// Package apperrors defines the closed set of error kinds produced by the
// caption pipeline, together with the retry classification consulted by the
// retry wrapper. Every kind implements Is() so callers can match with
// errors.Is() against a zero-value target.
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidURL is returned when the input cannot be parsed as a URL or
// does not carry a video identifier.
type ErrInvalidURL struct {
	URL string
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid video URL: %s", e.URL)
}

func (e *ErrInvalidURL) Is(target error) bool {
	_, ok := target.(*ErrInvalidURL)
	return ok
}

// ErrUnsupportedSource is returned for well-formed URLs pointing at a host
// the resolver does not recognize.
type ErrUnsupportedSource struct {
	URL string
}

func (e *ErrUnsupportedSource) Error() string {
	return fmt.Sprintf("unsupported video source: %s", e.URL)
}

func (e *ErrUnsupportedSource) Is(target error) bool {
	_, ok := target.(*ErrUnsupportedSource)
	return ok
}

// ErrInvalidVideoID is returned when an extracted identifier does not match
// the 11-character video ID grammar.
type ErrInvalidVideoID struct {
	VideoID string
}

func (e *ErrInvalidVideoID) Error() string {
	return fmt.Sprintf("invalid video ID: %q", e.VideoID)
}

func (e *ErrInvalidVideoID) Is(target error) bool {
	_, ok := target.(*ErrInvalidVideoID)
	return ok
}

// ErrVideoNotFound is returned when the upstream reports the video does not exist.
type ErrVideoNotFound struct {
	VideoID string
}

func (e *ErrVideoNotFound) Error() string {
	return fmt.Sprintf("video %s not found", e.VideoID)
}

func (e *ErrVideoNotFound) Is(target error) bool {
	_, ok := target.(*ErrVideoNotFound)
	return ok
}

// ErrVideoRestricted is returned when access to the video is forbidden.
type ErrVideoRestricted struct {
	VideoID string
	Reason  string
}

func (e *ErrVideoRestricted) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("video %s is restricted: %s", e.VideoID, e.Reason)
	}
	return fmt.Sprintf("video %s is restricted", e.VideoID)
}

func (e *ErrVideoRestricted) Is(target error) bool {
	_, ok := target.(*ErrVideoRestricted)
	return ok
}

// ErrGeoBlocked is returned when the video is unavailable in the request region.
type ErrGeoBlocked struct {
	VideoID string
}

func (e *ErrGeoBlocked) Error() string {
	return fmt.Sprintf("video %s is not available in this region", e.VideoID)
}

func (e *ErrGeoBlocked) Is(target error) bool {
	_, ok := target.(*ErrGeoBlocked)
	return ok
}

// ErrAgeRestricted is returned when the video requires age verification.
type ErrAgeRestricted struct {
	VideoID string
}

func (e *ErrAgeRestricted) Error() string {
	return fmt.Sprintf("video %s is age-restricted", e.VideoID)
}

func (e *ErrAgeRestricted) Is(target error) bool {
	_, ok := target.(*ErrAgeRestricted)
	return ok
}

// ErrNoCaptions is returned when every discovery strategy has been exhausted
// without finding a single caption track.
type ErrNoCaptions struct {
	VideoID string
}

func (e *ErrNoCaptions) Error() string {
	return fmt.Sprintf("no captions available for video %s", e.VideoID)
}

func (e *ErrNoCaptions) Is(target error) bool {
	_, ok := target.(*ErrNoCaptions)
	return ok
}

// ErrOnlyAutoGenerated is returned when caption tracks exist but all of them
// are auto-generated and the preferences disallow auto-generated tracks.
// It is deliberately distinct from ErrNoCaptions: the emptiness is
// preference-induced, not true absence.
type ErrOnlyAutoGenerated struct {
	VideoID string
}

func (e *ErrOnlyAutoGenerated) Error() string {
	return fmt.Sprintf("video %s only has auto-generated captions", e.VideoID)
}

func (e *ErrOnlyAutoGenerated) Is(target error) bool {
	_, ok := target.(*ErrOnlyAutoGenerated)
	return ok
}

// ErrLanguageUnavailable reports that a requested language is not present
// among the discovered tracks. Track selection itself narrows by language
// silently, so the pipeline never raises it; it completes the taxonomy for
// callers that enforce a language strictly on a returned track list.
type ErrLanguageUnavailable struct {
	VideoID   string
	Language  string
	Available []string
}

func (e *ErrLanguageUnavailable) Error() string {
	return fmt.Sprintf("language %q not available for video %s (available: %v)", e.Language, e.VideoID, e.Available)
}

func (e *ErrLanguageUnavailable) Is(target error) bool {
	_, ok := target.(*ErrLanguageUnavailable)
	return ok
}

// ErrRateLimited is returned on HTTP 429 responses. RetryAfter carries the
// server-signaled delay when one was provided.
type ErrRateLimited struct {
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited by upstream, retry after %s", e.RetryAfter)
}

func (e *ErrRateLimited) Is(target error) bool {
	_, ok := target.(*ErrRateLimited)
	return ok
}

// ErrServiceUnavailable is returned on transient upstream 5xx responses.
type ErrServiceUnavailable struct {
	Status int
}

func (e *ErrServiceUnavailable) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream service unavailable (HTTP %d)", e.Status)
	}
	return "upstream service unavailable"
}

func (e *ErrServiceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrServiceUnavailable)
	return ok
}

// ErrTransport wraps network-level failures (DNS, connect, timeout).
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport failure during %s", e.Op)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

func (e *ErrTransport) Is(target error) bool {
	_, ok := target.(*ErrTransport)
	return ok
}

// ErrMalformedCaptions is returned when a caption document (or an upstream
// structural payload) cannot be parsed. Fragment carries the offending input
// excerpt for diagnosis.
type ErrMalformedCaptions struct {
	VideoID  string
	Detail   string
	Fragment string
}

func (e *ErrMalformedCaptions) Error() string {
	msg := "malformed caption document: " + e.Detail
	if e.VideoID != "" {
		msg = fmt.Sprintf("malformed caption document for video %s: %s", e.VideoID, e.Detail)
	}
	if e.Fragment != "" {
		msg += fmt.Sprintf(" (offending fragment: %q)", e.Fragment)
	}
	return msg
}

func (e *ErrMalformedCaptions) Is(target error) bool {
	_, ok := target.(*ErrMalformedCaptions)
	return ok
}

// ErrInvalidTiming is returned by the timing validator when an entry has
// start >= end. Entry is 1-based.
type ErrInvalidTiming struct {
	Entry int
	Start time.Duration
	End   time.Duration
}

func (e *ErrInvalidTiming) Error() string {
	return fmt.Sprintf("invalid timing at entry %d: start %s >= end %s", e.Entry, e.Start, e.End)
}

func (e *ErrInvalidTiming) Is(target error) bool {
	_, ok := target.(*ErrInvalidTiming)
	return ok
}

// ErrEncodingFailure reports an internal error while serializing a canonical
// subtitle set. It should not occur in normal operation.
type ErrEncodingFailure struct {
	Format string
	Err    error
}

func (e *ErrEncodingFailure) Error() string {
	return fmt.Sprintf("failed to encode subtitles as %s: %v", e.Format, e.Err)
}

func (e *ErrEncodingFailure) Unwrap() error {
	return e.Err
}

func (e *ErrEncodingFailure) Is(target error) bool {
	_, ok := target.(*ErrEncodingFailure)
	return ok
}

// Retryable reports whether err belongs to a locally recoverable kind.
// Transport failures, rate limiting, and transient service unavailability
// may be retried; every other kind is terminal.
func Retryable(err error) bool {
	return errors.Is(err, &ErrTransport{}) ||
		errors.Is(err, &ErrRateLimited{}) ||
		errors.Is(err, &ErrServiceUnavailable{})
}

// RetryAfter extracts a server-signaled retry delay from err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var rl *ErrRateLimited
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter, true
	}
	return 0, false
}
