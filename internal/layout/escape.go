package layout

import "strings"

// markupEscaper escapes text and attribute values for the output markup.
// Single quotes are escaped because attributes are single-quoted.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// escape returns s with markup-significant characters replaced by
// character references.
func escape(s string) string {
	return markupEscaper.Replace(s)
}
