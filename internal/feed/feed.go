// Package feed renders the site's syndication and discovery documents:
// an RSS 2.0 channel, an Atom feed and an XML sitemap.
package feed

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/strapi"
)

const (
	RSSName     = "rss.xml"
	AtomName    = "feed.xml"
	SitemapName = "sitemap.xml"

	// ContentType is served for every document in this package.
	ContentType = "application/xml"
)

const (
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
	rfcLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// Site carries the channel level metadata shared by all documents.
type Site struct {
	URL         string
	Title       string
	Description string
	Author      string
	Language    string
}

// Content is everything the sitemap enumerates.
type Content struct {
	Posts    []strapi.Post
	Pages    []strapi.Page
	Projects []strapi.Project
	Docs     []strapi.Doc

	ProjectsEnabled bool
	DocsEnabled     bool
	PostsPerPage    int
}

// Artifact is one rendered document ready to be published or served.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// All renders the RSS channel, the Atom feed and the sitemap.
func All(site Site, content Content, now time.Time) ([]Artifact, error) {
	rss, err := RSS(site, content.Posts, now)
	if err != nil {
		return nil, err
	}
	atom, err := Atom(site, content.Posts, now)
	if err != nil {
		return nil, err
	}
	sitemap, err := Sitemap(site, content, now)
	if err != nil {
		return nil, err
	}

	return []Artifact{
		{Name: RSSName, ContentType: ContentType, Body: rss},
		{Name: AtomName, ContentType: ContentType, Body: atom},
		{Name: SitemapName, ContentType: ContentType, Body: sitemap},
	}, nil
}

// published returns the published posts newest first. The input is left
// untouched.
func published(posts []strapi.Post) []strapi.Post {
	out := make([]strapi.Post, 0, len(posts))
	for _, p := range posts {
		if p.Published() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(*out[j].PublishedAt)
	})
	return out
}

func summary(p strapi.Post) string {
	if p.Description != "" {
		return p.Description
	}
	return p.Excerpt
}

func iso(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func rfc(t time.Time) string {
	return t.UTC().Format(rfcLayout)
}

// mimeType guesses an image MIME type from the url's extension.
func mimeType(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	ext := ""
	if dot := strings.LastIndex(url, "."); dot >= 0 {
		ext = strings.ToLower(url[dot+1:])
	}

	switch ext {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func marshal(v any, what string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrapf(err, "encode %s", what)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrapf(err, "encode %s", what)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
