package docs

import "strings"

// HTMLRenderer produces HTML in three explicit steps: render the document as
// Markdown, escape the result, and wrap it in a fixed page template. It does
// not convert Markdown to HTML; headings stay literal text inside <pre>.
type HTMLRenderer struct {
	Markdown func(Document) string
	Escape   func(string) string
	Wrap     func(string) string
}

// DefaultHTMLRenderer wires the standard markdown, escape and wrap steps.
func DefaultHTMLRenderer() HTMLRenderer {
	return HTMLRenderer{
		Markdown: RenderMarkdown,
		Escape:   EscapeHTML,
		Wrap:     WrapHTML,
	}
}

// Render runs render, escape and wrap in order.
func (r HTMLRenderer) Render(doc Document) string {
	return r.Wrap(r.Escape(r.Markdown(doc)))
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
)

// EscapeHTML escapes & < > " ' and /.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Project Documentation</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
pre { white-space: pre-wrap; word-wrap: break-word; }
</style>
</head>
<body>
<pre>
`

const htmlTail = `</pre>
</body>
</html>
`

// WrapHTML embeds already-escaped text in the page template.
func WrapHTML(escaped string) string {
	return htmlHead + escaped + htmlTail
}
