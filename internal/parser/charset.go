package parser

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// legacyEncodings is the fixed probe order for caption documents that are
// not valid UTF-8. Windows-1252 and ISO-8859-2 cover the common western and
// central European subtitle encodings; the UTF-16 variants cover BOM-less
// exports.
var legacyEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_2,
	unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeBytes converts a raw caption document to UTF-8 text. Valid UTF-8
// passes through untouched; otherwise the legacy encodings are probed in
// order and the first clean decode wins. As a last resort the input is
// decoded lossily with replacement characters.
func DecodeBytes(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}

	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	return string(bytes.ToValidUTF8(raw, []byte("�")))
}
