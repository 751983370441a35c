package parser

import "strings"

// entityReplacer decodes the fixed entity set used by the upstream caption
// documents. A single-pass Replacer deliberately avoids re-decoding output
// of earlier replacements.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&apos;", "'",
)

// DecodeEntities decodes the fixed set of character references.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
