package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decompressionTransport advertises gzip, brotli, and zstd support and
// transparently decodes whichever the upstream picks.
type decompressionTransport struct {
	base http.RoundTripper
}

func newDecompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decompressionTransport{base: base}
}

func (t *decompressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	var reader io.ReadCloser
	switch contentEncoding(resp.Header) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = gz
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = zr.IOReadCloser()
	default:
		return resp, nil
	}

	resp.Body = &cascadeCloser{reader: reader, body: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// cascadeCloser closes the decompressor and then the underlying body.
type cascadeCloser struct {
	reader io.ReadCloser
	body   io.ReadCloser
}

func (c *cascadeCloser) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *cascadeCloser) Close() error {
	readerErr := c.reader.Close()
	bodyErr := c.body.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}

// contentEncoding returns the outermost encoding from the response header,
// lowercased. A list like "gzip, br" means br was applied last and must be
// removed first.
func contentEncoding(h http.Header) string {
	parts := strings.Split(h.Get("Content-Encoding"), ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
