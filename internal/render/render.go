// Package render turns CMS post bodies into HTML and plain text.
//
// Bodies arrive either as markdown or as rich-text HTML. Both go through
// goldmark with raw HTML passthrough enabled, so a single path handles
// either form.
package render

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultExcerptLength is the excerpt size used by feeds and listings.
const DefaultExcerptLength = 180

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTML renders body to HTML.
func HTML(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return buf.String(), nil
}

// PlainText strips all markup from body and collapses whitespace.
func PlainText(body string) string {
	rendered, err := HTML(body)
	if err != nil || rendered == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	// Block elements carry no trailing space in their text, so pad them
	// before flattening to keep words from different paragraphs apart.
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, br, div, blockquote, td, th").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most max runes of the body's plain text followed by an
// ellipsis when truncated. An empty body yields "".
func Excerpt(body string, max int) string {
	text := PlainText(body)
	if text == "" {
		return ""
	}
	if max <= 0 {
		max = DefaultExcerptLength
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	return strings.TrimRight(string(runes[:max]), " \t\n") + "…"
}
