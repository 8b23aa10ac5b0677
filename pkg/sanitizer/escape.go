package sanitizer

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var lineBreaker = strings.NewReplacer(
	"\r\n", "<br>",
	"\n", "<br>",
)

// EscapeHTML escapes text for embedding in HTML text content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeMultiline escapes s and then turns line breaks into <br> so a
// multi-line message keeps its shape inside an HTML email.
func EscapeMultiline(s string) string {
	return lineBreaker.Replace(EscapeHTML(s))
}
