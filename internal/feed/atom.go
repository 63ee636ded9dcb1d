package feed

import (
	"encoding/xml"
	"time"

	"github.com/Paintersrp/modular/internal/pathutil"
	"github.com/Paintersrp/modular/internal/strapi"
)

type atomFeed struct {
	XMLName  xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	Links    []atomHref  `xml:"link"`
	ID       string      `xml:"id"`
	Author   *atomAuthor `xml:"author"`
	Updated  string      `xml:"updated"`
	Entries  []atomEntry `xml:"entry"`
}

type atomHref struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	Link       atomHref       `xml:"link"`
	ID         string         `xml:"id"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Summary    string         `xml:"summary"`
	Categories []atomCategory `xml:"category"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// Atom renders an Atom feed of every published post, newest first.
func Atom(site Site, posts []strapi.Post, now time.Time) ([]byte, error) {
	home := pathutil.SiteURL(site.URL)

	feed := atomFeed{
		Title:    site.Title,
		Subtitle: site.Description,
		Links: []atomHref{
			{Href: home},
			{Href: home + AtomName, Rel: "self"},
		},
		ID:      home,
		Updated: iso(now),
	}
	if site.Author != "" {
		feed.Author = &atomAuthor{Name: site.Author}
	}

	for _, p := range published(posts) {
		link := pathutil.SiteURL(site.URL, "post", p.Slug)
		entry := atomEntry{
			Title:     p.Title,
			Link:      atomHref{Href: link},
			ID:        link,
			Published: iso(*p.PublishedAt),
			Updated:   iso(*p.PublishedAt),
			Summary:   summary(p),
		}
		for _, tag := range p.Tags {
			entry.Categories = append(entry.Categories, atomCategory{Term: tag})
		}
		feed.Entries = append(feed.Entries, entry)
	}

	return marshal(feed, "atom feed")
}
