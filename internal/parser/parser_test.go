// Parser tests cover signature detection order, each parser variant, the
// zero-entries-is-an-error rule, and malformed timestamp handling.
package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/ytcaps/ytcaps/internal/apperrors"
	"github.com/ytcaps/ytcaps/internal/models"
)

func TestParse_SRT(t *testing.T) {
	t.Parallel()
	input := "1\n00:00:01,000 --> 00:00:03,000\nHello\n\n2\n00:00:04,000 --> 00:00:06,000\nWorld\n\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatSRT {
		t.Errorf("SourceFormat = %v, want srt", set.SourceFormat)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set.Entries))
	}
	if set.Entries[0].Text != "Hello" || set.Entries[0].Start != time.Second {
		t.Errorf("entry 0 = %+v, want Hello starting at 1s", set.Entries[0])
	}
	if set.Entries[1].Text != "World" || set.Entries[1].Start != 4*time.Second {
		t.Errorf("entry 1 = %+v, want World starting at 4s", set.Entries[1])
	}
}

func TestParse_SRT_MultilineTextAndCRLF(t *testing.T) {
	t.Parallel()
	input := "1\r\n00:00:01,500 --> 00:00:03,250\r\nLine one\r\nLine two\r\n\r\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(set.Entries))
	}
	if set.Entries[0].Text != "Line one\nLine two" {
		t.Errorf("Text = %q, want joined lines", set.Entries[0].Text)
	}
	if set.Entries[0].Start != 1500*time.Millisecond || set.Entries[0].End != 3250*time.Millisecond {
		t.Errorf("timing = %v..%v, want 1.5s..3.25s", set.Entries[0].Start, set.Entries[0].End)
	}
}

func TestParse_SRT_MalformedTimestamp(t *testing.T) {
	t.Parallel()
	input := "1\n00:00:xx,000 --> 00:00:03,000\nHello\n\n"

	_, err := Parse([]byte(input), "en")
	if err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
	var mc *apperrors.ErrMalformedCaptions
	if !errors.As(err, &mc) {
		t.Fatalf("error = %T, want *ErrMalformedCaptions", err)
	}
	if mc.Fragment == "" {
		t.Error("expected offending fragment in error")
	}
}

func TestParse_VTT(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nHi\n\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatVTT {
		t.Errorf("SourceFormat = %v, want vtt", set.SourceFormat)
	}
	if len(set.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(set.Entries))
	}
	e := set.Entries[0]
	if e.Text != "Hi" || e.Start != time.Second || e.End != 3*time.Second {
		t.Errorf("entry = %+v, want Hi 1s..3s", e)
	}
}

func TestParse_VTT_SkipsIdentifiersAndNotes(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\nNOTE a comment\n\ncue-1\n00:00:01.000 --> 00:00:03.000 align:start\nFirst\n\ncue-2\n00:00:04.000 --> 00:00:06.000\nSecond\n\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set.Entries))
	}
	if set.Entries[0].Text != "First" || set.Entries[1].Text != "Second" {
		t.Errorf("entries = %+v", set.Entries)
	}
}

func TestParse_BareArrowFallsBackToVTT(t *testing.T) {
	t.Parallel()
	// No WEBVTT header, dot-decimal timestamps.
	input := "00:00:01.000 --> 00:00:03.000\nHeaderless cue\n\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatVTT {
		t.Errorf("SourceFormat = %v, want vtt", set.SourceFormat)
	}
	if len(set.Entries) != 1 || set.Entries[0].Text != "Headerless cue" {
		t.Errorf("entries = %+v", set.Entries)
	}
}

func TestParse_TimedTextParagraphSchema(t *testing.T) {
	t.Parallel()
	input := `<?xml version="1.0" encoding="utf-8"?>
<timedtext format="3">
<body>
<p t="1000" d="2000">Hello world</p>
<p t="3500" d="1500"><s>Split</s><s> into</s><s> words</s></p>
<p t="6000" d="1000">   </p>
</body>
</timedtext>`

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatRaw {
		t.Errorf("SourceFormat = %v, want raw", set.SourceFormat)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("expected 2 entries (blank paragraph skipped), got %d", len(set.Entries))
	}
	if set.Entries[0].Text != "Hello world" || set.Entries[0].Start != time.Second || set.Entries[0].End != 3*time.Second {
		t.Errorf("entry 0 = %+v", set.Entries[0])
	}
	if set.Entries[1].Text != "Split into words" {
		t.Errorf("entry 1 text = %q, want concatenated word segments", set.Entries[1].Text)
	}
	if set.Entries[1].Start != 3500*time.Millisecond || set.Entries[1].End != 5000*time.Millisecond {
		t.Errorf("entry 1 timing = %v..%v", set.Entries[1].Start, set.Entries[1].End)
	}
}

func TestParse_TimedTextLegacySchema(t *testing.T) {
	t.Parallel()
	input := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
<text start="1.5" dur="2.5">Hello world</text>
<text start="4.0" dur="3.0">This is a test</text>
</transcript>`

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set.Entries))
	}
	if set.Entries[0].Text != "Hello world" || set.Entries[0].Start != 1500*time.Millisecond {
		t.Errorf("entry 0 = %+v", set.Entries[0])
	}
	if set.Entries[1].End != 7*time.Second {
		t.Errorf("entry 1 end = %v, want 7s", set.Entries[1].End)
	}
}

func TestParse_TimedTextEntityDecoding(t *testing.T) {
	t.Parallel()
	// Cue text passes through exactly one fixed-set decode: double-encoded
	// references decode a single level, and references outside the fixed
	// set survive literally.
	tests := []struct {
		name string
		cue  string
		want string
	}{
		{"fixed set", "it&#39;s &quot;fine&quot;", `it's "fine"`},
		{"double-encoded decodes once", "x &amp;lt; y", "x &lt; y"},
		{"html-named entity survives", "one&nbsp;two", "one&nbsp;two"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := `<transcript><text start="0.5" dur="1.0">` + tt.cue + `</text></transcript>`
			set, err := Parse([]byte(input), "en")
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := set.Entries[0].Text; got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_TimedTextToleratesHTMLEntities(t *testing.T) {
	t.Parallel()
	// A strict XML decoder would reject &nbsp; outright; the extraction must
	// still yield the cue.
	input := `<transcript><text start="0" dur="1">one&nbsp;two</text></transcript>`

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Entries) != 1 || set.Entries[0].Text != "one&nbsp;two" {
		t.Errorf("entries = %+v", set.Entries)
	}
}

func TestParse_TimedTextMalformedTimestamp(t *testing.T) {
	t.Parallel()
	input := `<transcript><text start="abc" dur="1">x</text></transcript>`

	_, err := Parse([]byte(input), "en")
	var mc *apperrors.ErrMalformedCaptions
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v, want *ErrMalformedCaptions", err)
	}
	if mc.Fragment != "abc" {
		t.Errorf("Fragment = %q, want offending timestamp", mc.Fragment)
	}
}

func TestParse_TimedTextZeroEntriesIsError(t *testing.T) {
	t.Parallel()
	input := `<?xml version="1.0"?><timedtext><body></body></timedtext>`

	_, err := Parse([]byte(input), "en")
	if !errors.Is(err, &apperrors.ErrMalformedCaptions{}) {
		t.Fatalf("error = %v, want malformed captions", err)
	}
}

func TestParse_PlainText(t *testing.T) {
	t.Parallel()
	input := "First line\n\nSecond line\nThird line\n"

	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatTXT {
		t.Errorf("SourceFormat = %v, want txt", set.SourceFormat)
	}
	if len(set.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(set.Entries))
	}
	// Sequential, non-overlapping, zero-gap synthetic timing.
	for i, e := range set.Entries {
		wantStart := time.Duration(i) * 3 * time.Second
		if e.Start != wantStart || e.End != wantStart+3*time.Second {
			t.Errorf("entry %d timing = %v..%v, want %v..%v", i, e.Start, e.End, wantStart, wantStart+3*time.Second)
		}
	}
}

func TestParse_EmptyInputIsError(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "\n\n\n", "   \n  \n"} {
		if _, err := Parse([]byte(input), "en"); !errors.Is(err, &apperrors.ErrMalformedCaptions{}) {
			t.Errorf("Parse(%q) error = %v, want malformed captions", input, err)
		}
	}
}

func TestParse_DetectionOrder(t *testing.T) {
	t.Parallel()
	// A document containing both a WEBVTT token and SRT-style timestamps
	// must hit the structured parser first.
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nstructured wins\n\n"
	set, err := Parse([]byte(input), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.SourceFormat != models.FormatVTT {
		t.Errorf("SourceFormat = %v, want vtt (detection order)", set.SourceFormat)
	}
}
