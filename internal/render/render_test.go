package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRendersMarkdown(t *testing.T) {
	out, err := HTML("# Title\n\nSome *emphasis*.")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>emphasis</em>")
}

func TestHTMLPassesRawHTMLThrough(t *testing.T) {
	out, err := HTML("<p>already <strong>html</strong></p>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>html</strong>")
}

func TestPlainTextStripsMarkup(t *testing.T) {
	got := PlainText("<p>First</p><p>Second   line</p><script>alert(1)</script>")

	assert.Equal(t, "First Second line", got)
}

func TestPlainTextEmpty(t *testing.T) {
	assert.Equal(t, "", PlainText("   "))
}

func TestExcerptShortTextUntouched(t *testing.T) {
	assert.Equal(t, "Hello world", Excerpt("Hello **world**", 180))
}

func TestExcerptTruncatesWithEllipsis(t *testing.T) {
	body := strings.Repeat("word ", 100)

	got := Excerpt(body, 20)

	require.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 21)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), " "))
}

func TestExcerptCountsRunes(t *testing.T) {
	got := Excerpt(strings.Repeat("é", 10), 4)

	assert.Equal(t, "éééé…", got)
}
